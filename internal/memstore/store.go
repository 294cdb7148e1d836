// Package memstore keeps todos in a process-local map. It is the default
// backend; nothing survives a restart.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/repository"
)

type entry struct {
	todo todo.Todo
	seq  uint64
}

// Store implements todo.Repository in memory.
type Store struct {
	mu    sync.RWMutex
	items map[string]*entry
	seq   uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{items: make(map[string]*entry)}
}

var _ todo.Repository = (*Store)(nil)

// Create inserts a copy of t.
func (s *Store) Create(_ context.Context, t *todo.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[t.ID]; exists {
		return repository.ErrDuplicateID
	}
	s.seq++
	s.items[t.ID] = &entry{todo: *t, seq: s.seq}
	return nil
}

// Get returns a copy of the todo with the given id.
func (s *Store) Get(_ context.Context, id string) (*todo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t := e.todo
	return &t, nil
}

// List returns todos by priority then recency, and the unfiltered count.
func (s *Store) List(_ context.Context, opts todo.ListOptions) ([]todo.Todo, int, error) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.items))
	for _, e := range s.items {
		entries = append(entries, e)
	}
	sorted := make([]todo.Todo, 0, len(entries))
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := a.todo.Priority.Rank(), b.todo.Priority.Rank(); ra != rb {
			return ra > rb
		}
		if !a.todo.CreatedAt.Equal(b.todo.CreatedAt) {
			return a.todo.CreatedAt.After(b.todo.CreatedAt)
		}
		return a.seq > b.seq
	})
	for _, e := range entries {
		sorted = append(sorted, e.todo)
	}
	s.mu.RUnlock()

	return todo.Paginate(sorted, opts.Page, opts.Limit), len(sorted), nil
}

// Update applies fn to the stored todo under the write lock.
func (s *Store) Update(_ context.Context, id string, fn func(*todo.Todo)) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated := e.todo
	fn(&updated)
	updated.ID = id
	e.todo = updated
	return &updated, nil
}

// Delete removes the todo with the given id.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// DeleteCompleted removes completed todos and reports how many went.
func (s *Store) DeleteCompleted(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.items {
		if e.todo.Completed {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}

// CompleteAll marks pending todos completed at the given time.
func (s *Store) CompleteAll(_ context.Context, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.items {
		if e.todo.Completed {
			continue
		}
		e.todo.Completed = true
		if at.After(e.todo.CreatedAt) {
			e.todo.UpdatedAt = at
		} else {
			e.todo.UpdatedAt = e.todo.CreatedAt
		}
		n++
	}
	return n, nil
}

// Stats counts todos by completion.
func (s *Store) Stats(_ context.Context) (todo.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := todo.Stats{Total: len(s.items)}
	for _, e := range s.items {
		if e.todo.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

// Clear drops every todo.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*entry)
	return nil
}
