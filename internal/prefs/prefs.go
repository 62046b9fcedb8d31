package prefs

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/store"
)

// Well-known preference keys. Values are plain strings; the client interprets
// them (volume and rate as decimal numbers, track id as-is, empty = subtitles off).
const (
	KeyVolume       = "volume"
	KeyPlaybackRate = "playback_rate"
	KeySubtitleID   = "subtitle_track"
)

// Preferences persists per-user, per-device player settings (volume, playback
// rate, chosen subtitle track) in the key-value store. Reads degrade to the
// caller's default: a missing or unreachable preference silently resets
// rather than erroring into the player.
type Preferences struct {
	store  store.Store
	logger zerolog.Logger
}

// New creates a preference store over s.
func New(s store.Store, logger zerolog.Logger) *Preferences {
	return &Preferences{store: s, logger: logger}
}

func storageKey(userID, key string) string {
	return fmt.Sprintf("prefs:%s:%s", userID, key)
}

// Get returns the stored value for (userID, key), or def when absent or
// unreadable.
func (p *Preferences) Get(userID, key, def string) string {
	raw, ok := p.store.Get(storageKey(userID, key))
	if !ok {
		return def
	}
	return string(raw)
}

// Set stores value for (userID, key). Failures are logged and returned; the
// player keeps its in-memory value either way.
func (p *Preferences) Set(userID, key, value string) error {
	if err := p.store.Set(storageKey(userID, key), []byte(value)); err != nil {
		p.logger.Warn().Err(err).Str("user", userID).Str("pref", key).Msg("Failed to persist preference")
		return err
	}
	return nil
}
