package subtitles

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/apperrors"
	"github.com/FNXDOOM/AniMind/internal/metrics"
	"github.com/FNXDOOM/AniMind/internal/models"
	"github.com/FNXDOOM/AniMind/internal/testutil"
)

func testTracks() []models.Track {
	return []models.Track{
		{ID: "en", Label: "English", Document: testutil.TwoCueDocument},
		{ID: "jp", Label: "日本語", Document: testutil.OverlappingDocument},
	}
}

func tracksParsedValue(t *testing.T) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := metrics.TracksParsedTotal.Write(m); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestLibrary_TracksInConfigurationOrder(t *testing.T) {
	lib := NewLibrary(testTracks(), 10, time.Hour, zerolog.Nop())

	infos := lib.Tracks()
	if len(infos) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(infos))
	}
	if infos[0].ID != "en" || infos[1].ID != "jp" {
		t.Errorf("Tracks out of configuration order: %+v", infos)
	}
	if infos[0].Label != "English" {
		t.Errorf("Unexpected label: %+v", infos[0])
	}
}

func TestLibrary_Cues(t *testing.T) {
	lib := NewLibrary(testTracks(), 10, time.Hour, zerolog.Nop())

	cues, err := lib.Cues("en")
	if err != nil {
		t.Fatalf("Cues: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("Expected 2 cues, got %d", len(cues))
	}
}

func TestLibrary_CuesUnknownTrack(t *testing.T) {
	lib := NewLibrary(testTracks(), 10, time.Hour, zerolog.Nop())

	_, err := lib.Cues("missing")
	if err == nil {
		t.Fatal("Expected error for unknown track id")
	}
	if !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected ErrNotFound, got %T: %v", err, err)
	}
}

func TestLibrary_ParsesLazilyAndCaches(t *testing.T) {
	lib := NewLibrary(testTracks(), 10, time.Hour, zerolog.Nop())

	before := tracksParsedValue(t)

	// Construction alone must not parse anything.
	if got := tracksParsedValue(t); got != before {
		t.Fatalf("Parsing happened at construction: counter moved by %v", got-before)
	}

	if _, err := lib.Cues("en"); err != nil {
		t.Fatalf("Cues: %v", err)
	}
	if _, err := lib.Cues("en"); err != nil {
		t.Fatalf("Cues: %v", err)
	}
	if _, _, err := lib.ActiveAt("en", 1); err != nil {
		t.Fatalf("ActiveAt: %v", err)
	}

	if got := tracksParsedValue(t) - before; got != 1 {
		t.Errorf("Expected exactly one parse for repeated lookups, got %v", got)
	}
}

func TestLibrary_ActiveAt(t *testing.T) {
	lib := NewLibrary(testTracks(), 10, time.Hour, zerolog.Nop())

	cue, ok, err := lib.ActiveAt("en", 1)
	if err != nil {
		t.Fatalf("ActiveAt: %v", err)
	}
	if !ok || cue.Text != "A" {
		t.Errorf("ActiveAt(en, 1) = %+v, %v; want A", cue, ok)
	}

	_, ok, err = lib.ActiveAt("en", 2.5)
	if err != nil {
		t.Fatalf("ActiveAt: %v", err)
	}
	if ok {
		t.Error("Expected no active cue in the gap")
	}

	if _, _, err := lib.ActiveAt("missing", 0); err == nil {
		t.Error("Expected error for unknown track")
	}
}

func TestLibrary_DuplicateTrackIDKeepsFirst(t *testing.T) {
	tracks := []models.Track{
		{ID: "en", Label: "First", Document: testutil.TwoCueDocument},
		{ID: "en", Label: "Second", Document: testutil.MultilineDocument},
	}
	lib := NewLibrary(tracks, 10, time.Hour, zerolog.Nop())

	infos := lib.Tracks()
	if len(infos) != 1 {
		t.Fatalf("Expected 1 track after dedup, got %d", len(infos))
	}
	if infos[0].Label != "First" {
		t.Errorf("Expected first occurrence kept, got %+v", infos[0])
	}
}
