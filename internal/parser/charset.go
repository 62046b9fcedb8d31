package parser

import (
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection
// and conversion to UTF-8. Subtitle documents fetched over HTTP arrive in
// whatever encoding the origin chose (ISO-8859-1, Windows-1252, UTF-16, ...);
// the contentType hint from the response, when present, short-circuits the
// heuristic detection.
//
// If the content is already UTF-8, this is a no-op wrapper with minimal overhead.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}

// NewBOMReader wraps an io.Reader so that a leading byte order mark selects
// the decoder: UTF-16 documents (either endianness) are converted to UTF-8 and
// a UTF-8 BOM is stripped. Local subtitle files commonly carry a BOM written
// by desktop subtitle editors.
func NewBOMReader(body io.Reader) io.Reader {
	decoder := unicode.UTF8BOM.NewDecoder()
	return transform.NewReader(body, unicode.BOMOverride(decoder))
}
