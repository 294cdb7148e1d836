package todo

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the todo doesn't exist.
	ErrNotFound = errors.New("todo not found")
	// ErrInvalidInput indicates invalid input for todo operations.
	ErrInvalidInput = errors.New("invalid todo input")
)

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Messages []string
}

// NewValidationError returns nil when there is nothing to report.
func NewValidationError(messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
