package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "TODO_NOT_FOUND", MapError(fmt.Errorf("get: %w", todo.ErrNotFound)).Code)
	require.Equal(t, "VALIDATION_FAILED", MapError(todo.NewValidationError("title is required")).Code)
	require.Equal(t, "VALIDATION_FAILED", MapError(todo.ErrInvalidInput).Code)

	internal := MapError(errors.New("connection reset"))
	require.Equal(t, "INTERNAL", internal.Code)
	require.NotContains(t, internal.Message, "connection reset")
}
