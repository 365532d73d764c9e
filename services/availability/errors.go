package availability

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a malformed query rejected before any computation.
// Normal "no availability" conditions are not errors; they resolve to empty
// result sets.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Message)
}

func NewInvalidInput(field, message string) error {
	return &InvalidInputError{Field: field, Message: message}
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError.
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie)
}
