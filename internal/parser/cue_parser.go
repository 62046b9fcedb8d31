package parser

import (
	"fmt"
	"strings"

	"github.com/FNXDOOM/AniMind/internal/models"
)

// timingSeparator splits the start and end timestamps on a cue timing line.
const timingSeparator = "-->"

// ParseDocument converts a timed-text subtitle document into cues in document
// order, plus a count of malformed blocks that were dropped.
//
// The scan is a single linear pass over lines. Any line outside a cue body
// that does not contain the timing separator is boilerplate and skipped: this
// covers format headers ("WEBVTT"), SRT cue-index lines preceding a timing
// line, and stray styling directives between blocks. Caption text accumulates
// after a timing line until a blank line or end of input; multi-line captions
// keep an internal newline.
//
// A malformed timestamp or an end that does not exceed the start drops that
// single cue; the rest of the document still parses. Blocks whose accumulated
// text is empty are dropped silently and are not counted as malformed.
func ParseDocument(document string) (models.CueList, int) {
	document = strings.ReplaceAll(document, "\r\n", "\n")
	lines := strings.Split(document, "\n")

	var cues models.CueList
	dropped := 0

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, timingSeparator) {
			i++
			continue
		}

		start, end, timingErr := parseTimingLine(line)
		i++

		// Consume the block body even when the timing line is malformed so
		// its caption lines are not rescanned as boilerplate.
		var captionLines []string
		for i < len(lines) {
			text := strings.TrimRight(lines[i], " \t")
			if strings.TrimSpace(text) == "" {
				break
			}
			captionLines = append(captionLines, text)
			i++
		}

		if timingErr != nil {
			dropped++
			continue
		}

		text := strings.TrimSpace(strings.Join(captionLines, "\n"))
		if text == "" {
			continue
		}

		cues = append(cues, models.Cue{Start: start, End: end, Text: text})
	}

	return cues, dropped
}

// parseTimingLine splits "<start> --> <end>" and converts both timestamps,
// enforcing that the end exceeds the start.
func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.SplitN(line, timingSeparator, 2)

	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}

	// Trailing cue settings after the end timestamp (a WebVTT habit like
	// "align:start") are ignored, not interpreted.
	endField := strings.TrimSpace(parts[1])
	if idx := strings.IndexAny(endField, " \t"); idx != -1 {
		endField = endField[:idx]
	}

	end, err := ParseTimestamp(endField)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("cue end %.3f does not exceed start %.3f", end, start)
	}

	return start, end, nil
}
