package subtitles

import (
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// acceptedEncodings is advertised on outgoing requests unless the caller
// already set its own Accept-Encoding.
const acceptedEncodings = "gzip, br, zstd"

// decompressingTransport is an http.RoundTripper that advertises compressed
// encodings and transparently decodes the response body. Subtitle hosts
// routinely serve timed text compressed; the fetcher only ever sees plain
// bytes.
type decompressingTransport struct {
	base http.RoundTripper
}

func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &decompressingTransport{base: base}
}

func (t *decompressingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone so the caller's request is never mutated.
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", acceptedEncodings)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204, and 304 responses carry no body to decode.
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	encoding := lastContentEncoding(resp.Header.Get("Content-Encoding"))
	decoder, err := newBodyDecoder(encoding, resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	if decoder == nil {
		// Identity or an encoding we don't speak: hand the body through untouched.
		return resp, nil
	}

	resp.Body = &decodedBody{decoder: decoder, network: resp.Body}

	// The decoded stream no longer matches the encoded headers.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// newBodyDecoder returns a decoder for the given encoding, or nil when the
// body should pass through as-is.
func newBodyDecoder(encoding string, body io.Reader) (io.ReadCloser, error) {
	switch encoding {
	case "gzip":
		return gzip.NewReader(body)
	case "br":
		return io.NopCloser(brotli.NewReader(body)), nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, nil
	}
}

// decodedBody closes the decoder and the underlying network body together.
type decodedBody struct {
	decoder io.ReadCloser
	network io.ReadCloser
}

func (d *decodedBody) Read(p []byte) (int, error) {
	return d.decoder.Read(p)
}

func (d *decodedBody) Close() error {
	return errors.Join(d.decoder.Close(), d.network.Close())
}

// lastContentEncoding extracts the outermost (last applied) encoding from a
// possibly comma-separated Content-Encoding header, lowercased. Empty when the
// header is absent.
func lastContentEncoding(header string) string {
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
