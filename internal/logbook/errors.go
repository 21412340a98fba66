package logbook

import (
	"errors"
	"fmt"
)

// ErrDuplicateLog is returned when a second current-type log is attempted
// for the same (date, prayer). Callers surface a specific "already logged
// today" message on it, distinct from all other failures.
var ErrDuplicateLog = errors.New("prayer already logged for this date")

// ErrLogNotFound is returned by edits targeting an id that does not exist.
var ErrLogNotFound = errors.New("prayer log not found")

// ValidationError rejects a structurally invalid write: bad prayer or log
// type name, non-positive qada count, malformed date or time. Nothing is
// persisted when it fires.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
