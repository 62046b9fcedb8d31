package models

import "math"

// Cue is a single timestamped caption entry. Start and End are offsets in
// seconds from the beginning of the media; End always exceeds Start for cues
// produced by the parser. Text may contain embedded line breaks for
// multi-line captions. A Cue is immutable once parsed.
type Cue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Contains reports whether t falls inside the cue's [Start, End] interval.
// Both bounds are inclusive.
func (c Cue) Contains(t float64) bool {
	return t >= c.Start && t <= c.End
}

// CueList holds cues in document order. Overlapping cues are all retained;
// no de-duplication or overlap resolution is performed.
type CueList []Cue

// ActiveAt returns the first cue in document order whose interval contains t,
// or false when no cue is active. Lookup is a linear scan, which is fine at
// the tens-to-low-hundreds cue counts a single track carries.
func (l CueList) ActiveAt(t float64) (Cue, bool) {
	if math.IsNaN(t) {
		return Cue{}, false
	}
	for _, cue := range l {
		if cue.Contains(t) {
			return cue, true
		}
	}
	return Cue{}, false
}
