package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{"validation", todo.NewValidationError("title is required"), http.StatusBadRequest, "Validation failed"},
		{"wrapped validation", fmt.Errorf("create: %w", todo.NewValidationError("x")), http.StatusBadRequest, "Validation failed"},
		{"invalid input", todo.ErrInvalidInput, http.StatusBadRequest, "Validation failed"},
		{"malformed", fmt.Errorf("%w: eof", ErrMalformedBody), http.StatusBadRequest, "Invalid request body"},
		{"not found", fmt.Errorf("get: %w", todo.ErrNotFound), http.StatusNotFound, "Todo not found"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			require.Equal(t, tc.status, got.Status)
			require.Equal(t, tc.label, got.Label)
			require.NotContains(t, got.Message, "disk on fire")
		})
	}
}

func TestMapError_JoinsValidationMessages(t *testing.T) {
	got := MapError(todo.NewValidationError("title is required", "priority must be one of HIGH, MEDIUM, LOW"))
	require.Equal(t, "title is required; priority must be one of HIGH, MEDIUM, LOW", got.Message)
}

func TestDecodeBody_CollectsSchemaMessages(t *testing.T) {
	var body createTodoBody
	err := decodeBody(strings.NewReader(`{"title": 5, "priority": "NOW"}`), createTodoSchema, &body)

	var verr *todo.ValidationError
	require.ErrorAs(t, err, &verr)
	joined := strings.Join(verr.Messages, "\n")
	require.Contains(t, joined, "title:")
	require.Contains(t, joined, "priority:")
}
