package models

// Track is a named subtitle track: one language or variant of captions for a
// piece of media. Document holds the raw cue-timed text; it is parsed lazily
// into a CueList and the result cached for the playback session.
type Track struct {
	// ID uniquely identifies the track within a track set.
	ID string `json:"id"`

	// Label is the display name shown in the track selector.
	Label string `json:"label"`

	// Document is the raw timed-text content, UTF-8 normalized.
	Document string `json:"-"`
}

// TrackInfo is the wire representation of a track: identity and label only,
// without the raw document.
type TrackInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Info returns the wire representation of the track.
func (t Track) Info() TrackInfo {
	return TrackInfo{ID: t.ID, Label: t.Label}
}
