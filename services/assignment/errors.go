package assignment

import "fmt"

// InvalidRequestError reports a malformed assignment request.
type InvalidRequestError struct {
	Field   string
	Message string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid assignment request %q: %s", e.Field, e.Message)
}

func newInvalidRequest(field, message string) error {
	return &InvalidRequestError{Field: field, Message: message}
}
