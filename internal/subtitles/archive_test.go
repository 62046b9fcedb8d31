package subtitles

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/FNXDOOM/AniMind/internal/apperrors"
	"github.com/FNXDOOM/AniMind/internal/testutil"
)

// buildZip creates an in-memory ZIP archive from name->content pairs.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create zip entry %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write zip entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDocument_FromZip(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"episode-01.srt": testutil.TwoCueDocument,
	})

	data, err := extractDocument("pack.zip", archive)
	if err != nil {
		t.Fatalf("extractDocument: %v", err)
	}
	if string(data) != testutil.TwoCueDocument {
		t.Errorf("Extracted content mismatch:\n%s", string(data))
	}
}

func TestExtractDocument_SkipsNonDocumentFiles(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"readme.nfo":     "release notes",
		"episode-01.srt": testutil.TwoCueDocument,
	})

	data, err := extractDocument("pack.zip", archive)
	if err != nil {
		t.Fatalf("extractDocument: %v", err)
	}
	if string(data) != testutil.TwoCueDocument {
		t.Errorf("Picked the wrong file: %q", string(data))
	}
}

func TestExtractDocument_NoDocumentInArchive(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"readme.nfo": "nothing useful",
		"poster.jpg": "binary",
	})

	_, err := extractDocument("pack.zip", archive)
	if err == nil {
		t.Fatal("Expected error for archive without documents")
	}
	if !errors.Is(err, &apperrors.ErrDocumentNotFoundInArchive{}) {
		t.Errorf("Expected ErrDocumentNotFoundInArchive, got %T: %v", err, err)
	}
}

func TestExtractDocument_CorruptArchive(t *testing.T) {
	if _, err := extractDocument("pack.zip", []byte("not a zip at all")); err == nil {
		t.Fatal("Expected error for corrupt archive")
	}
}

func TestIsRarContent(t *testing.T) {
	if !isRarContent([]byte("Rar!\x1a\x07\x00rest")) {
		t.Error("Expected RAR magic to be recognized")
	}
	if isRarContent([]byte("PK\x03\x04")) {
		t.Error("ZIP magic misidentified as RAR")
	}
	if isRarContent([]byte("Ra")) {
		t.Error("Short content misidentified as RAR")
	}
}

func TestIsArchiveSource(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"pack.zip", "", true},
		{"pack.RAR", "", true},
		{"subs.srt", "", false},
		{"download", "application/zip", true},
		{"download", "application/x-rar-compressed", true},
		{"subs.vtt", "text/vtt", false},
	}
	for _, tt := range tests {
		if got := isArchiveSource(tt.name, tt.contentType); got != tt.want {
			t.Errorf("isArchiveSource(%q, %q) = %v, want %v", tt.name, tt.contentType, got, tt.want)
		}
	}
}
