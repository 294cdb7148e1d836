package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/todolist/internal/domain/todo"
)

// APIError represents an MCP tool error payload.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var verr *todo.ValidationError
	switch {
	case errors.As(err, &verr):
		return &APIError{
			Code:         "VALIDATION_FAILED",
			Message:      strings.Join(verr.Messages, "; "),
			Details:      verr.Messages,
			RecoveryHint: "Fix the listed arguments and retry",
		}
	case errors.Is(err, todo.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_FAILED", Message: "invalid input"}
	case errors.Is(err, todo.ErrNotFound):
		return &APIError{Code: "TODO_NOT_FOUND", Message: "todo not found", RecoveryHint: "Check the id with list_todos"}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}
