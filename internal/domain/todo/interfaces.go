package todo

import (
	"context"
	"time"
)

// Repository provides storage for todos.
//
// List returns todos ordered by priority (HIGH first), then newest first.
// Update runs apply against the stored todo atomically; apply must not retain
// the pointer.
type Repository interface {
	Create(ctx context.Context, t *Todo) error
	Get(ctx context.Context, id string) (*Todo, error)
	List(ctx context.Context, opts ListOptions) ([]Todo, int, error)
	Update(ctx context.Context, id string, apply func(*Todo)) (*Todo, error)
	Delete(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) (int, error)
	CompleteAll(ctx context.Context, at time.Time) (int, error)
	Stats(ctx context.Context) (Stats, error)
	Clear(ctx context.Context) error
}
