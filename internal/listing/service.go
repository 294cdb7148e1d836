// Package listing serves the todo list endpoint: the plain paginated listing
// and the search/filter pipeline.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/filter"
	"github.com/rpggio/todolist/internal/query"
	"github.com/rpggio/todolist/internal/search"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// TodoLister provides the ordered todo list.
type TodoLister interface {
	List(ctx context.Context, opts todo.ListOptions) ([]todo.Todo, int, error)
}

// Echo reports the effective search and filter parameters.
type Echo struct {
	Q             string        `json:"q,omitempty"`
	Status        todo.Status   `json:"status,omitempty"`
	Priority      todo.Priority `json:"priority,omitempty"`
	CreatedAfter  *time.Time    `json:"created_after,omitempty"`
	CreatedBefore *time.Time    `json:"created_before,omitempty"`
	UpdatedAfter  *time.Time    `json:"updated_after,omitempty"`
	UpdatedBefore *time.Time    `json:"updated_before,omitempty"`
}

// Result is the list response body. Filtered and Query are set only on the
// search/filter path.
type Result struct {
	Todos    []todo.Todo `json:"todos"`
	Total    int         `json:"total"`
	Filtered *int        `json:"filtered,omitempty"`
	Page     int         `json:"page"`
	Limit    int         `json:"limit"`
	Query    *Echo       `json:"query,omitempty"`
}

// Service composes the store listing with search, filter and pagination.
type Service struct {
	todos  TodoLister
	search search.Options
	logger *slog.Logger
}

// NewService creates a listing service.
func NewService(todos TodoLister, opts search.Options, logger *slog.Logger) *Service {
	return &Service{todos: todos, search: opts, logger: logger}
}

// List answers a parsed list request.
func (s *Service) List(ctx context.Context, q query.Query) (*Result, error) {
	page, limit := DefaultPage, DefaultLimit
	if q.Page != nil {
		page = *q.Page
	}
	if q.Limit != nil {
		limit = *q.Limit
	}

	if !q.HasSearchOrFilter() {
		items, total, err := s.todos.List(ctx, todo.ListOptions{Page: page, Limit: limit})
		if err != nil {
			return nil, fmt.Errorf("listing todos: %w", err)
		}
		return &Result{Todos: nonNil(items), Total: total, Page: page, Limit: limit}, nil
	}

	all, total, err := s.todos.List(ctx, todo.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	matched := all
	if q.Search != "" {
		matched = search.Match(matched, q.Search, s.search)
	}
	matched = filter.Apply(matched, q.Filters)
	filtered := len(matched)

	if s.logger != nil {
		s.logger.DebugContext(ctx, "todos searched", "query", q.Search, "total", total, "filtered", filtered)
	}

	return &Result{
		Todos:    nonNil(todo.Paginate(matched, page, limit)),
		Total:    total,
		Filtered: &filtered,
		Page:     page,
		Limit:    limit,
		Query:    echo(q),
	}, nil
}

func echo(q query.Query) *Echo {
	e := &Echo{
		Q:             q.Search,
		Priority:      q.Filters.Priority,
		CreatedAfter:  q.Filters.CreatedAfter,
		CreatedBefore: q.Filters.CreatedBefore,
		UpdatedAfter:  q.Filters.UpdatedAfter,
		UpdatedBefore: q.Filters.UpdatedBefore,
	}
	if q.Filters.Status != todo.StatusAll {
		e.Status = q.Filters.Status
	}
	return e
}

func nonNil(items []todo.Todo) []todo.Todo {
	if items == nil {
		return []todo.Todo{}
	}
	return items
}
