package progress

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/models"
)

// PositionSource is the playback engine as the tracker sees it: the current
// position and whether media is actually playing.
type PositionSource interface {
	Position() float64
	Playing() bool
}

// Tracker periodically persists the current playback position for one bound
// key. It is an explicit, cancellable task tied to the playback session's
// lifetime rather than a bare timer with cleanup scattered across teardown
// paths.
//
// The key a save targets is bound when tracking starts, never read back at
// write time, so a save still in flight when the user switches episodes lands
// under the previous episode's key.
type Tracker struct {
	records  *Records
	source   PositionSource
	interval time.Duration
	logger   zerolog.Logger

	mu     sync.Mutex
	key    models.ProgressKey
	active bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTracker creates a tracker saving through records every interval while
// the source reports playing.
func NewTracker(records *Records, source PositionSource, interval time.Duration, logger zerolog.Logger) *Tracker {
	if interval <= 0 {
		interval = 4 * time.Second
	}
	return &Tracker{
		records:  records,
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Start binds key and begins the autosave loop for it. Any previous loop is
// stopped first, including its forced final save, so no viewing time on the
// outgoing episode is lost.
func (t *Tracker) Start(key models.ProgressKey) {
	t.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	t.mu.Lock()
	t.key = key
	t.active = true
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	go t.run(ctx, key, done)
}

// run is the autosave loop. key is captured here, at schedule time.
func (t *Tracker) run(ctx context.Context, key models.ProgressKey, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Saves while paused are skipped: they could only rewrite the
			// same value, and on a seek-while-paused they would overwrite a
			// valid resume point.
			if !t.source.Playing() {
				continue
			}
			t.saveNow(key)
		}
	}
}

// Flush forces an immediate save for the currently bound key. No-op when the
// tracker is not running.
func (t *Tracker) Flush() {
	t.mu.Lock()
	key := t.key
	active := t.active
	t.mu.Unlock()

	if !active {
		return
	}
	t.saveNow(key)
}

// Stop cancels the autosave loop, waits for any in-flight save to finish, and
// performs the forced final save for the bound key. It fires regardless of
// timer phase or paused state so the last seconds of viewing are never lost.
// Stopping an already stopped tracker is a no-op.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	key := t.key
	cancel := t.cancel
	done := t.done
	t.active = false
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()

	cancel()
	<-done

	t.saveNow(key)
}

func (t *Tracker) saveNow(key models.ProgressKey) {
	// Save failures are already logged, counted, and reported by Records;
	// the tracker is a convenience layer and never escalates them.
	_ = t.records.Save(key, t.source.Position())
}
