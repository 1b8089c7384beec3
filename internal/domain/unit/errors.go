package unit

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("unit not found")
	ErrNameTaken = errors.New("name already taken")
)

// DeleteBlockedError reports a delete refused because members still
// reference the unit; Count is the exact number of blocking members.
type DeleteBlockedError struct {
	Kind  Kind
	Count int64
}

func (e *DeleteBlockedError) Error() string {
	return fmt.Sprintf("cannot delete %s: %d member(s) still assigned", e.Kind, e.Count)
}
