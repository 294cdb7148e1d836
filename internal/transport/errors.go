package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rpggio/todolist/internal/domain/todo"
)

// ErrMalformedBody indicates a request body that is not valid JSON.
var ErrMalformedBody = errors.New("malformed request body")

// APIError is the client-facing form of an error.
type APIError struct {
	Status  int
	Label   string
	Message string
}

// MapError maps domain errors to HTTP responses. Unknown errors become a
// generic 500 that does not leak details.
func MapError(err error) APIError {
	var verr *todo.ValidationError
	switch {
	case errors.As(err, &verr):
		return APIError{Status: http.StatusBadRequest, Label: "Validation failed", Message: strings.Join(verr.Messages, "; ")}
	case errors.Is(err, todo.ErrInvalidInput):
		return APIError{Status: http.StatusBadRequest, Label: "Validation failed", Message: "invalid input"}
	case errors.Is(err, ErrMalformedBody):
		return APIError{Status: http.StatusBadRequest, Label: "Invalid request body", Message: "request body must be a JSON object"}
	case errors.Is(err, todo.ErrNotFound):
		return APIError{Status: http.StatusNotFound, Label: "Todo not found", Message: "no todo with this id"}
	default:
		return APIError{Status: http.StatusInternalServerError, Label: "Internal server error", Message: "something went wrong"}
	}
}
