package prefs

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/testutil"
)

func TestPreferences_SetGet(t *testing.T) {
	p := New(testutil.NewGatedStore(), zerolog.Nop())

	if err := p.Set("u1", KeyVolume, "0.8"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := p.Get("u1", KeyVolume, "1.0"); got != "0.8" {
		t.Errorf("Get = %q, want 0.8", got)
	}
}

func TestPreferences_GetDefaultWhenAbsent(t *testing.T) {
	p := New(testutil.NewGatedStore(), zerolog.Nop())

	if got := p.Get("u1", KeyPlaybackRate, "1.0"); got != "1.0" {
		t.Errorf("Get = %q, want default 1.0", got)
	}
}

func TestPreferences_UsersDoNotCollide(t *testing.T) {
	p := New(testutil.NewGatedStore(), zerolog.Nop())

	_ = p.Set("u1", KeySubtitleID, "track-en")
	_ = p.Set("u2", KeySubtitleID, "track-jp")

	if got := p.Get("u1", KeySubtitleID, ""); got != "track-en" {
		t.Errorf("u1 subtitle = %q, want track-en", got)
	}
	if got := p.Get("u2", KeySubtitleID, ""); got != "track-jp" {
		t.Errorf("u2 subtitle = %q, want track-jp", got)
	}
}

func TestPreferences_SetFailureReturned(t *testing.T) {
	s := testutil.NewGatedStore()
	s.FailWrites = true
	p := New(s, zerolog.Nop())

	if err := p.Set("u1", KeyVolume, "0.5"); err == nil {
		t.Fatal("Expected error when the store rejects the write")
	}
}

func TestPreferences_EmptyValueRoundTrips(t *testing.T) {
	// Empty string means "subtitles off" and must survive storage, not fall
	// back to the default.
	p := New(testutil.NewGatedStore(), zerolog.Nop())

	_ = p.Set("u1", KeySubtitleID, "")
	if got := p.Get("u1", KeySubtitleID, "track-en"); got != "" {
		t.Errorf("Get = %q, want empty string", got)
	}
}
