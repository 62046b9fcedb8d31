package apperrors

import "fmt"

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewTrackNotFoundError creates a specific error for when a subtitle track is
// not part of the configured track set.
func NewTrackNotFoundError(trackID string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "subtitle track",
		ID:       trackID,
	}
}

// ErrDocumentNotFoundInArchive is returned when a subtitle pack archive holds
// no usable timed-text document.
type ErrDocumentNotFoundInArchive struct {
	Source    string
	FileCount int
}

// Error implements the error interface.
func (e *ErrDocumentNotFoundInArchive) Error() string {
	return fmt.Sprintf("no subtitle document found in archive %s (searched %d files)", e.Source, e.FileCount)
}

// Is allows for error checking with errors.Is().
func (e *ErrDocumentNotFoundInArchive) Is(target error) bool {
	_, ok := target.(*ErrDocumentNotFoundInArchive)
	return ok
}

// ErrTrackSourceUnavailable is returned when a configured track source cannot
// be fetched or read.
type ErrTrackSourceUnavailable struct {
	TrackID string
	Source  string
}

// Error implements the error interface.
func (e *ErrTrackSourceUnavailable) Error() string {
	return fmt.Sprintf("track %s source unavailable: %s", e.TrackID, e.Source)
}

// Is allows for error checking with errors.Is().
func (e *ErrTrackSourceUnavailable) Is(target error) bool {
	_, ok := target.(*ErrTrackSourceUnavailable)
	return ok
}
