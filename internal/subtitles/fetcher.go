package subtitles

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/apperrors"
	"github.com/FNXDOOM/AniMind/internal/config"
	"github.com/FNXDOOM/AniMind/internal/models"
	"github.com/FNXDOOM/AniMind/internal/parser"
)

// Fetcher resolves configured track sources into raw subtitle documents.
// Sources are local files or HTTP URLs; either may point at a bare timed-text
// document or a .zip/.rar subtitle pack, and content is normalized to UTF-8
// regardless of the encoding the source used.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewFetcher creates a fetcher whose HTTP client transparently decompresses
// gzip, brotli, and zstd responses.
func NewFetcher(timeout time.Duration, logger zerolog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Clone DefaultTransport to preserve its settings (timeouts, connection
	// pooling, HTTP/2) before wrapping it.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newCompressionTransport(baseTransport),
		},
		logger: logger,
	}
}

// Load resolves a single track source into a Track with UTF-8 document text.
func (f *Fetcher) Load(ctx context.Context, src config.TrackSource) (models.Track, error) {
	var (
		document string
		err      error
	)

	switch {
	case src.Path != "":
		document, err = f.loadFile(src)
	case src.URL != "":
		document, err = f.loadURL(ctx, src)
	default:
		err = &apperrors.ErrTrackSourceUnavailable{TrackID: src.ID, Source: "no path or url configured"}
	}
	if err != nil {
		return models.Track{}, err
	}

	return models.Track{ID: src.ID, Label: src.Label, Document: document}, nil
}

// LoadAll resolves every configured source. A track whose source fails is
// logged and skipped: partial subtitle coverage is preferable to none.
func (f *Fetcher) LoadAll(ctx context.Context, sources []config.TrackSource) []models.Track {
	tracks := make([]models.Track, 0, len(sources))
	for _, src := range sources {
		track, err := f.Load(ctx, src)
		if err != nil {
			f.logger.Warn().Err(err).Str("track_id", src.ID).Msg("Skipping unavailable subtitle track")
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks
}

func (f *Fetcher) loadFile(src config.TrackSource) (string, error) {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read track file %s: %w", src.Path, err)
	}

	if isArchiveSource(src.Path, "") || isRarContent(content) {
		content, err = extractDocument(src.Path, content)
		if err != nil {
			return "", err
		}
	}

	return normalizeBOM(content)
}

func (f *Fetcher) loadURL(ctx context.Context, src config.TrackSource) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch track %s: %w", src.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &apperrors.ErrTrackSourceUnavailable{
			TrackID: src.ID,
			Source:  fmt.Sprintf("%s returned status %d", src.URL, resp.StatusCode),
		}
	}

	contentType := resp.Header.Get("Content-Type")

	if isArchiveSource(src.URL, contentType) {
		content, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read archive body: %w", err)
		}
		document, err := extractDocument(src.URL, content)
		if err != nil {
			return "", err
		}
		return normalizeBOM(document)
	}

	// Bare document: convert to UTF-8 using the response content type as a
	// charset hint, falling back to content sniffing.
	utf8Reader, err := parser.NewUTF8Reader(resp.Body, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to detect charset for track %s: %w", src.ID, err)
	}
	content, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", fmt.Errorf("failed to read track body: %w", err)
	}
	return string(content), nil
}

// normalizeBOM strips a UTF-8 BOM and converts UTF-16 content (detected by
// BOM) to UTF-8.
func normalizeBOM(content []byte) (string, error) {
	reader := parser.NewBOMReader(bytes.NewReader(content))
	normalized, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to normalize document encoding: %w", err)
	}
	return string(normalized), nil
}
