package subtitles

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode/v2"

	"github.com/FNXDOOM/AniMind/internal/apperrors"
)

// documentExtensions lists file extensions treated as timed-text documents
// when picking a file out of a subtitle pack archive.
var documentExtensions = map[string]bool{
	".srt": true,
	".vtt": true,
	".sub": true,
	".txt": true,
}

// isArchiveSource reports whether a source name or content type refers to a
// packed subtitle archive rather than a bare document.
func isArchiveSource(name, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".zip" || ext == ".rar" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "zip") || strings.Contains(ct, "rar")
}

// extractDocument pulls the first timed-text document out of a subtitle pack.
// Fansub groups ship track sets as .zip or .rar; a pack that contains no
// usable document is an error, not a silent empty track.
func extractDocument(source string, content []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(source))
	if ext == ".rar" || isRarContent(content) {
		return extractFromRar(source, content)
	}
	return extractFromZip(source, content)
}

// isRarContent sniffs the RAR magic bytes ("Rar!") so archives served with a
// generic content type and no extension still route to the right extractor.
func isRarContent(content []byte) bool {
	return len(content) >= 4 && bytes.Equal(content[:4], []byte("Rar!"))
}

func extractFromZip(source string, content []byte) ([]byte, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP archive: %w", err)
	}

	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(file.Name))] {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s in ZIP: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s from ZIP: %w", file.Name, err)
		}
		return data, nil
	}

	return nil, &apperrors.ErrDocumentNotFoundInArchive{Source: source, FileCount: len(zipReader.File)}
}

func extractFromRar(source string, content []byte) ([]byte, error) {
	rarReader, err := rardecode.NewReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open RAR archive: %w", err)
	}

	searched := 0
	for {
		header, err := rarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read RAR archive: %w", err)
		}
		if header.IsDir {
			continue
		}
		searched++
		if !documentExtensions[strings.ToLower(filepath.Ext(header.Name))] {
			continue
		}

		data, err := io.ReadAll(rarReader)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s from RAR: %w", header.Name, err)
		}
		return data, nil
	}

	return nil, &apperrors.ErrDocumentNotFoundInArchive{Source: source, FileCount: searched}
}
