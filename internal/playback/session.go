package playback

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/models"
	"github.com/FNXDOOM/AniMind/internal/prefs"
	"github.com/FNXDOOM/AniMind/internal/progress"
	"github.com/FNXDOOM/AniMind/internal/subtitles"
)

// Player is the host playback engine: an HTML media element, a test fake,
// whatever actually decodes video. The session only ever drives it through
// this surface.
type Player interface {
	Position() float64
	Playing() bool
	Play()
	Pause()
	Seek(position float64)
}

// Session ties one player to the subtitle library and the progress tracker
// for one user. It owns the ordering rules of a playback session:
//
//   - Switching to an episode first force-saves the outgoing episode's
//     position, then pauses, loads the stored position for the new key, seeks,
//     resumes, and only then starts the new key's autosave loop. The load
//     always completes before the new timer runs, so a save can never
//     overwrite a not-yet-applied seek.
//   - Selecting a track is idempotent and clears the displayed caption
//     immediately, so a stale cue from the previous track never lingers.
//   - Close stops the autosave loop with the forced final save as the last
//     teardown action.
type Session struct {
	player  Player
	library *subtitles.Library
	records *progress.Records
	tracker *progress.Tracker
	prefs   *prefs.Preferences
	logger  zerolog.Logger
	userID  string

	mu      sync.Mutex
	current models.ProgressKey
	trackID string // "" means subtitles off
	caption string
}

// NewSession creates a session for userID. The previously chosen subtitle
// track is restored from preferences; an id that no longer exists in the
// library falls back to off.
func NewSession(player Player, library *subtitles.Library, records *progress.Records, preferences *prefs.Preferences, userID string, saveInterval time.Duration, logger zerolog.Logger) *Session {
	s := &Session{
		player:  player,
		library: library,
		records: records,
		tracker: progress.NewTracker(records, player, saveInterval, logger),
		prefs:   preferences,
		logger:  logger,
		userID:  userID,
	}

	if stored := preferences.Get(userID, prefs.KeySubtitleID, ""); stored != "" {
		if _, err := library.Cues(stored); err == nil {
			s.trackID = stored
		} else {
			logger.Warn().Str("track_id", stored).Msg("Stored subtitle track no longer available, subtitles off")
		}
	}

	return s
}

// PlayEpisode switches playback to (subjectID, episode): forced save for the
// outgoing episode, pause, restore position, seek, resume, start autosave.
// Pausing before the seek prevents a visible flash of content from time zero.
func (s *Session) PlayEpisode(subjectID string, episode int) {
	s.tracker.Stop()

	s.player.Pause()

	key := models.ProgressKey{UserID: s.userID, SubjectID: subjectID, Episode: episode}
	position := s.records.Load(key)
	s.player.Seek(position)
	s.player.Play()

	s.tracker.Start(key)

	s.mu.Lock()
	s.current = key
	s.caption = ""
	s.mu.Unlock()

	s.logger.Debug().
		Str("subject_id", subjectID).
		Int("episode", episode).
		Float64("position", position).
		Msg("Episode started")
}

// SelectTrack switches the active subtitle track ("" turns subtitles off).
// The displayed caption clears immediately rather than waiting for the next
// time update. Selecting the already-active track is a no-op beyond that
// clear. An unknown id is an error and leaves the selection unchanged.
func (s *Session) SelectTrack(id string) error {
	if id != "" {
		if _, err := s.library.Cues(id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.trackID = id
	s.caption = ""
	s.mu.Unlock()

	// Best-effort persistence; the in-memory selection stands either way.
	_ = s.prefs.Set(s.userID, prefs.KeySubtitleID, id)
	return nil
}

// TimeUpdate recomputes the caption for playback time t and returns it.
// ok is false when subtitles are off or no cue covers t.
func (s *Session) TimeUpdate(t float64) (string, bool) {
	s.mu.Lock()
	id := s.trackID
	s.mu.Unlock()

	if id == "" {
		s.setCaption("")
		return "", false
	}

	cue, ok, err := s.library.ActiveAt(id, t)
	if err != nil || !ok {
		s.setCaption("")
		return "", false
	}

	s.setCaption(cue.Text)
	return cue.Text, true
}

// Caption returns the currently displayed caption ("" when none).
func (s *Session) Caption() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caption
}

// TrackID returns the id of the selected subtitle track ("" when off).
func (s *Session) TrackID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackID
}

// CurrentEpisode returns the progress key of the episode playback last
// switched to (zero value before the first PlayEpisode).
func (s *Session) CurrentEpisode() models.ProgressKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Flush forces an immediate progress save for the current episode.
func (s *Session) Flush() {
	s.tracker.Flush()
}

// Close tears the session down. The forced final save is the last action.
func (s *Session) Close() {
	s.mu.Lock()
	s.caption = ""
	s.mu.Unlock()

	s.tracker.Stop()
}

func (s *Session) setCaption(text string) {
	s.mu.Lock()
	s.caption = text
	s.mu.Unlock()
}
