package keypoint

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode marks malformed input or a record that does not match the schema.
	ErrDecode = errors.New("decode error")
	// ErrInsufficientCoordinates marks a record with too few (or, in 3D, not exactly three) coordinates.
	ErrInsufficientCoordinates = errors.New("insufficient coordinates")
)

// RecordError ties a failure to the record that caused it.
type RecordError struct {
	Index int // position in the sequence being decoded or projected
	ID    int
	HasID bool
	Err   error
}

func (e *RecordError) Error() string {
	if e.HasID {
		return fmt.Sprintf("record %d (id %d): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
