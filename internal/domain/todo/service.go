package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/todolist/internal/repository"
)

// Service handles todo business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new todo service.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest describes a todo creation request.
type CreateRequest struct {
	Title       string
	Description string
	Priority    Priority
}

// Create creates a new pending todo.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Todo, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := s.timestamp()
	t := &Todo{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	s.debug(ctx, "todo created", "id", t.ID, "priority", t.Priority)
	return t, nil
}

// Get returns a todo by ID.
func (s *Service) Get(ctx context.Context, id string) (*Todo, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "getting todo")
	}
	return t, nil
}

// List returns a page of todos in default order together with the store size.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Todo, int, error) {
	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing todos: %w", err)
	}
	return items, total, nil
}

// Update merges patch over the stored todo and bumps UpdatedAt, even when the
// patch is empty.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Todo, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	now := s.timestamp()
	updated, err := s.repo.Update(ctx, id, func(t *Todo) {
		patch.Apply(t)
		t.UpdatedAt = notBefore(now, t.CreatedAt)
	})
	if err != nil {
		return nil, mapNotFound(err, "updating todo")
	}

	s.debug(ctx, "todo updated", "id", id)
	return updated, nil
}

// Toggle flips the completion flag of a todo.
func (s *Service) Toggle(ctx context.Context, id string) (*Todo, error) {
	now := s.timestamp()
	updated, err := s.repo.Update(ctx, id, func(t *Todo) {
		t.Completed = !t.Completed
		t.UpdatedAt = notBefore(now, t.CreatedAt)
	})
	if err != nil {
		return nil, mapNotFound(err, "toggling todo")
	}
	return updated, nil
}

// Delete removes a todo.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "deleting todo")
	}
	s.debug(ctx, "todo deleted", "id", id)
	return nil
}

// DeleteCompleted removes every completed todo and returns how many were removed.
func (s *Service) DeleteCompleted(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteCompleted(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting completed todos: %w", err)
	}
	s.debug(ctx, "completed todos deleted", "count", n)
	return n, nil
}

// CompleteAll marks every pending todo completed and returns how many changed.
func (s *Service) CompleteAll(ctx context.Context) (int, error) {
	n, err := s.repo.CompleteAll(ctx, s.timestamp())
	if err != nil {
		return 0, fmt.Errorf("completing todos: %w", err)
	}
	s.debug(ctx, "todos completed", "count", n)
	return n, nil
}

// Stats returns total, completed and pending counts.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("computing stats: %w", err)
	}
	return stats, nil
}

// Clear removes every todo.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing todos: %w", err)
	}
	return nil
}

// Seed migrates legacy records and inserts them. It stops at the first
// record that fails validation.
func (s *Service) Seed(ctx context.Context, items []Todo) (int, error) {
	migrated := MigrateLegacy(items, s.timestamp())
	for i := range migrated {
		t := migrated[i]
		err := ValidateCreateInput(CreateRequest{Title: t.Title, Description: t.Description, Priority: t.Priority})
		if err != nil {
			return i, fmt.Errorf("seed record %d: %w", i, err)
		}
		if err := s.repo.Create(ctx, &t); err != nil {
			return i, fmt.Errorf("seeding todo %s: %w", t.ID, err)
		}
	}
	if s.logger != nil {
		s.logger.Info("seeded todos", "count", len(migrated))
	}
	return len(migrated), nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Service) debug(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.DebugContext(ctx, msg, args...)
	}
}

func notBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}

func mapNotFound(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
