package progress

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/models"
	"github.com/FNXDOOM/AniMind/internal/testutil"
)

var testKey = models.ProgressKey{UserID: "u1", SubjectID: "show", Episode: 2}

func TestRecords_SaveLoadRoundtrip(t *testing.T) {
	s := testutil.NewGatedStore()
	records := NewRecords(s, zerolog.Nop(), nil)

	if err := records.Save(testKey, 47.3); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := records.Load(testKey); got != 47.3 {
		t.Errorf("Load = %v, want 47.3", got)
	}
}

func TestRecords_NeverSavedLoadsZero(t *testing.T) {
	s := testutil.NewGatedStore()
	records := NewRecords(s, zerolog.Nop(), nil)

	if got := records.Load(testKey); got != 0 {
		t.Errorf("Load for never-saved key = %v, want 0", got)
	}
}

func TestRecords_LastWriteWins(t *testing.T) {
	s := testutil.NewGatedStore()
	records := NewRecords(s, zerolog.Nop(), nil)

	_ = records.Save(testKey, 10)
	_ = records.Save(testKey, 90.5)

	if got := records.Load(testKey); got != 90.5 {
		t.Errorf("Load = %v, want 90.5", got)
	}
}

func TestRecords_SaveClampsInvalidPositions(t *testing.T) {
	tests := []struct {
		name     string
		position float64
	}{
		{"negative", -5},
		{"NaN", math.NaN()},
		{"infinity", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewGatedStore()
			records := NewRecords(s, zerolog.Nop(), nil)

			if err := records.Save(testKey, tt.position); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if got := records.Load(testKey); got != 0 {
				t.Errorf("Load after Save(%v) = %v, want 0", tt.position, got)
			}
		})
	}
}

func TestRecords_LoadClampsStoredPosition(t *testing.T) {
	// A record written by an older or buggy client may hold a negative
	// position. Load must still hand the player something seekable.
	s := testutil.NewGatedStore()
	raw, _ := json.Marshal(models.Progress{SubjectID: "show", Episode: 2, Position: -12})
	_ = s.Set(testKey.StorageKey(), raw)

	records := NewRecords(s, zerolog.Nop(), nil)
	if got := records.Load(testKey); got != 0 {
		t.Errorf("Load = %v, want 0", got)
	}
}

func TestRecords_CorruptRecordLoadsZero(t *testing.T) {
	s := testutil.NewGatedStore()
	_ = s.Set(testKey.StorageKey(), []byte("{not json"))

	records := NewRecords(s, zerolog.Nop(), nil)
	if got := records.Load(testKey); got != 0 {
		t.Errorf("Load of corrupt record = %v, want 0", got)
	}
}

func TestRecords_FailedWriteReported(t *testing.T) {
	s := testutil.NewGatedStore()
	s.FailWrites = true

	reported := 0
	records := NewRecords(s, zerolog.Nop(), func(error) { reported++ })

	if err := records.Save(testKey, 5); err == nil {
		t.Fatal("Expected Save to return an error when all write attempts fail")
	}
	if reported != 1 {
		t.Errorf("Expected reporter called once, got %d", reported)
	}
}

func TestRecords_PendingSaveLandsUnderOriginalKey(t *testing.T) {
	// A save that is still in flight when playback moves to another episode
	// must write under the key it was scheduled with.
	s := testutil.NewGatedStore()
	s.Gate = make(chan struct{})
	records := NewRecords(s, zerolog.Nop(), nil)

	saveDone := make(chan struct{})
	go func() {
		defer close(saveDone)
		_ = records.Save(testKey, 33)
	}()

	// Playback has "switched" to another episode before the write completes.
	nextKey := models.ProgressKey{UserID: "u1", SubjectID: "show", Episode: 3}

	s.Gate <- struct{}{}
	select {
	case <-saveDone:
	case <-time.After(time.Second):
		t.Fatal("Save did not complete after gate release")
	}

	if !s.Contains(testKey.StorageKey()) {
		t.Error("Pending save did not land under the original key")
	}
	if s.Contains(nextKey.StorageKey()) {
		t.Error("Pending save leaked into the new episode's key")
	}
}
