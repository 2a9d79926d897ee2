package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a candidate pricing schedule that was rejected.
	ErrValidation = errors.New("invalid pricing schedule")
	// ErrInvalidRange marks a billing window whose end precedes its start.
	ErrInvalidRange = errors.New("invalid time range")
	// ErrConfiguration marks a bill requested against an empty schedule.
	ErrConfiguration = errors.New("pricing schedule not configured")
)

// ValidationError names the first schedule rule a candidate violated.
// Index is the position of the offending slab after sorting, or -1 when the
// rule concerns the schedule as a whole.
type ValidationError struct {
	Index int
	Rule  string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Rule)
	}
	return fmt.Sprintf("%s: slab %d: %s", ErrValidation, e.Index, e.Rule)
}

// Unwrap lets callers match with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(index int, format string, args ...interface{}) error {
	return &ValidationError{Index: index, Rule: fmt.Sprintf(format, args...)}
}
