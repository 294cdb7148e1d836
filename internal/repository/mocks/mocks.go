package mocks

import (
	"context"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/stretchr/testify/mock"
)

// TodoRepository is a mock for todo.Repository.
type TodoRepository struct {
	mock.Mock
}

var _ todo.Repository = (*TodoRepository)(nil)

func (m *TodoRepository) Create(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TodoRepository) Get(ctx context.Context, id string) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*todo.Todo); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TodoRepository) List(ctx context.Context, opts todo.ListOptions) ([]todo.Todo, int, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]todo.Todo); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// Update passes the stored copy configured via Return to apply, so tests can
// observe what the service changed.
func (m *TodoRepository) Update(ctx context.Context, id string, apply func(*todo.Todo)) (*todo.Todo, error) {
	args := m.Called(ctx, id, apply)
	t, ok := args.Get(0).(*todo.Todo)
	if !ok {
		return nil, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	updated := *t
	apply(&updated)
	return &updated, nil
}

func (m *TodoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TodoRepository) DeleteCompleted(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *TodoRepository) CompleteAll(ctx context.Context, at time.Time) (int, error) {
	args := m.Called(ctx, at)
	return args.Int(0), args.Error(1)
}

func (m *TodoRepository) Stats(ctx context.Context) (todo.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(todo.Stats), args.Error(1)
}

func (m *TodoRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
