package progress

import (
	"encoding/json"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/metrics"
	"github.com/FNXDOOM/AniMind/internal/models"
	"github.com/FNXDOOM/AniMind/internal/store"
)

// Reporter receives write failures for out-of-band error reporting (Sentry in
// production). It must never block playback.
type Reporter func(err error)

// Records persists playback positions in the key-value store, one JSON record
// per (user, subject, episode) key, last write wins.
//
// Reads and writes are best-effort: a failed or missing read degrades to
// position zero, and a failed write is retried, logged, counted, and reported
// but never propagated into the playback path.
type Records struct {
	store    store.Store
	retry    retrypolicy.RetryPolicy[any]
	logger   zerolog.Logger
	reporter Reporter
	now      func() time.Time
}

// NewRecords creates a Records over the given store. reporter may be nil.
func NewRecords(s store.Store, logger zerolog.Logger, reporter Reporter) *Records {
	retry := retrypolicy.Builder[any]().
		WithBackoff(50*time.Millisecond, time.Second).
		WithMaxRetries(2).
		Build()

	return &Records{
		store:    s,
		retry:    retry,
		logger:   logger,
		reporter: reporter,
		now:      time.Now,
	}
}

// Load returns the stored position for key, or zero when no record exists,
// the store is unavailable, or the stored record is unusable. The player
// seeks to whatever Load returns, so zero means "start from the beginning".
func (r *Records) Load(key models.ProgressKey) float64 {
	raw, ok := r.store.Get(key.StorageKey())
	if !ok {
		metrics.ProgressLoadsTotal.WithLabelValues("miss").Inc()
		return 0
	}

	var record models.Progress
	if err := json.Unmarshal(raw, &record); err != nil {
		r.logger.Warn().Err(err).Str("key", key.StorageKey()).Msg("Unreadable progress record, starting from zero")
		metrics.ProgressLoadsTotal.WithLabelValues("miss").Inc()
		return 0
	}

	metrics.ProgressLoadsTotal.WithLabelValues("hit").Inc()
	return models.ClampPosition(record.Position)
}

// Save persists position for key, clamping invalid values to zero first.
// The write is retried with backoff; on final failure the error is logged,
// counted, and handed to the reporter, and also returned so callers that want
// to know (tests, the HTTP handler) can tell.
func (r *Records) Save(key models.ProgressKey, position float64) error {
	record := models.Progress{
		SubjectID: key.SubjectID,
		Episode:   key.Episode,
		Position:  models.ClampPosition(position),
		SavedAt:   r.now(),
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}

	storageKey := key.StorageKey()
	err = failsafe.Run(func() error {
		return r.store.Set(storageKey, raw)
	}, r.retry)

	if err != nil {
		metrics.ProgressSavesTotal.WithLabelValues("error").Inc()
		r.logger.Error().Err(err).Str("key", storageKey).Msg("Failed to save playback progress")
		if r.reporter != nil {
			r.reporter(err)
		}
		return err
	}

	metrics.ProgressSavesTotal.WithLabelValues("ok").Inc()
	return nil
}
