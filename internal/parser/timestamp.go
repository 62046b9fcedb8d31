package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimestamp converts a timed-text timestamp into seconds. Both
// "HH:MM:SS.mmm" and "MM:SS.mmm" (hours omitted) are supported, detected by
// counting colon-separated segments. The seconds segment may carry a
// fractional part; a comma decimal separator (the SRT dialect) is accepted
// alongside the dot.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	// SRT writes "00:00:01,234"; normalize to a dot before float parsing.
	value = strings.ReplaceAll(value, ",", ".")

	segments := strings.Split(value, ":")

	var hours, minutes int
	var secondsSegment string
	switch len(segments) {
	case 2:
		// MM:SS.mmm
		m, err := parseIntSegment(segments[0])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes %q: %w", segments[0], err)
		}
		minutes = m
		secondsSegment = segments[1]
	case 3:
		// HH:MM:SS.mmm
		h, err := parseIntSegment(segments[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours %q: %w", segments[0], err)
		}
		m, err := parseIntSegment(segments[1])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes %q: %w", segments[1], err)
		}
		hours = h
		minutes = m
		secondsSegment = segments[2]
	default:
		return 0, fmt.Errorf("timestamp %q has %d segments, want 2 or 3", value, len(segments))
	}

	seconds, err := strconv.ParseFloat(secondsSegment, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds %q: %w", secondsSegment, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative seconds %q", secondsSegment)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

// parseIntSegment parses a non-negative integer timestamp segment.
func parseIntSegment(segment string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(segment))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative segment")
	}
	return n, nil
}
