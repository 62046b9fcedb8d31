package subtitles

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/apperrors"
	"github.com/FNXDOOM/AniMind/internal/metrics"
	"github.com/FNXDOOM/AniMind/internal/models"
	"github.com/FNXDOOM/AniMind/internal/parser"
)

// Library holds the subtitle track set for a playback session. The set is
// supplied at construction and read-only afterwards. Documents are parsed
// lazily on first lookup and the parse result is cached per track id, so
// repeated active-cue lookups never re-parse.
type Library struct {
	tracks map[string]models.Track
	order  []string
	parsed *lru.LRU[string, models.CueList]
	logger zerolog.Logger
}

// NewLibrary creates a Library over the given tracks. cacheSize bounds the
// number of parsed cue lists held at once; ttl expires parse results so a
// long-lived process re-parses cold tracks instead of pinning them forever.
func NewLibrary(tracks []models.Track, cacheSize int, ttl time.Duration, logger zerolog.Logger) *Library {
	if cacheSize <= 0 {
		cacheSize = 100
	}

	byID := make(map[string]models.Track, len(tracks))
	order := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if _, exists := byID[track.ID]; exists {
			logger.Warn().Str("track_id", track.ID).Msg("Duplicate track id, keeping first")
			continue
		}
		byID[track.ID] = track
		order = append(order, track.ID)
	}

	return &Library{
		tracks: byID,
		order:  order,
		parsed: lru.NewLRU[string, models.CueList](cacheSize, nil, ttl),
		logger: logger,
	}
}

// Tracks returns the track set in configuration order.
func (l *Library) Tracks() []models.TrackInfo {
	infos := make([]models.TrackInfo, 0, len(l.order))
	for _, id := range l.order {
		infos = append(infos, l.tracks[id].Info())
	}
	return infos
}

// Cues returns the parsed cue list for the given track id, parsing the
// document on first access.
func (l *Library) Cues(id string) (models.CueList, error) {
	if cues, ok := l.parsed.Get(id); ok {
		return cues, nil
	}

	track, exists := l.tracks[id]
	if !exists {
		return nil, apperrors.NewTrackNotFoundError(id)
	}

	cues, dropped := parser.ParseDocument(track.Document)
	metrics.TracksParsedTotal.Inc()
	if dropped > 0 {
		metrics.CueDropsTotal.Add(float64(dropped))
		l.logger.Warn().
			Str("track_id", id).
			Int("dropped", dropped).
			Int("parsed", len(cues)).
			Msg("Dropped malformed cue blocks")
	}

	l.parsed.Add(id, cues)
	return cues, nil
}

// ActiveAt returns the active cue for track id at playback time t, or
// ok=false when no cue covers t.
func (l *Library) ActiveAt(id string, t float64) (models.Cue, bool, error) {
	cues, err := l.Cues(id)
	if err != nil {
		return models.Cue{}, false, err
	}
	cue, ok := cues.ActiveAt(t)
	return cue, ok, nil
}
