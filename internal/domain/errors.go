package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested record does not exist or is not owned
// by the caller. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken indicates a registration attempt with an email that already
// has an account.
var ErrEmailTaken = errors.New("email already registered")

// ValidationError carries field-level detail about rejected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
