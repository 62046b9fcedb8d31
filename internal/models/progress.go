package models

import (
	"fmt"
	"math"
	"time"
)

// ProgressKey identifies one playback-progress record: which user watched
// which episode of which title. One record exists per key; later writes
// overwrite earlier ones.
type ProgressKey struct {
	UserID    string
	SubjectID string
	Episode   int
}

// StorageKey renders the composite key used in the key-value store.
func (k ProgressKey) StorageKey() string {
	return fmt.Sprintf("progress:%s:%s:%d", k.UserID, k.SubjectID, k.Episode)
}

// Progress is the stored playback position for a ProgressKey.
type Progress struct {
	SubjectID string    `json:"subjectId"`
	Episode   int       `json:"episodeIndex"`
	Position  float64   `json:"positionSeconds"`
	SavedAt   time.Time `json:"savedAt"`
}

// ClampPosition sanitizes a playback position before it is persisted or
// applied. Negative and non-finite values clamp to zero; a stale resume point
// is preferable to a corrupt one.
func ClampPosition(position float64) float64 {
	if math.IsNaN(position) || math.IsInf(position, 0) || position < 0 {
		return 0
	}
	return position
}
