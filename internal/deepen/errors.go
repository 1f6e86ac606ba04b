package deepen

import (
	"errors"
	"fmt"
)

// ErrPathConflict is matched by every PathConflictError.
var ErrPathConflict = errors.New("path conflict")

// PathConflictError reports a slot that already holds a value of a kind
// incompatible with what a later path needs there.
type PathConflictError struct {
	Path     string // the entry being added
	Slot     string // the location of the conflicting slot
	Expected string
	Actual   string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("%v: %q needs %s at %q, found %s", ErrPathConflict, e.Path, e.Expected, e.Slot, e.Actual)
}

func (e *PathConflictError) Unwrap() error {
	return ErrPathConflict
}
