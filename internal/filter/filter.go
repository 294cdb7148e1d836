// Package filter narrows todo lists by completion, priority and date bounds.
package filter

import (
	"fmt"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
)

// Criteria is a conjunction of optional predicates. Zero values are inactive.
type Criteria struct {
	Status        todo.Status
	Priority      todo.Priority
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

// IsZero reports whether no predicate is set.
func (c Criteria) IsZero() bool {
	return c.Status == "" &&
		c.Priority == "" &&
		c.CreatedAfter == nil &&
		c.CreatedBefore == nil &&
		c.UpdatedAfter == nil &&
		c.UpdatedBefore == nil
}

// Apply returns the todos satisfying every active predicate, in input order.
// The input slice is not modified.
func Apply(items []todo.Todo, c Criteria) []todo.Todo {
	out := make([]todo.Todo, 0, len(items))
	for _, item := range items {
		if Matches(item, c) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether a single todo satisfies c.
func Matches(item todo.Todo, c Criteria) bool {
	switch c.Status {
	case todo.StatusCompleted:
		if !item.Completed {
			return false
		}
	case todo.StatusPending:
		if item.Completed {
			return false
		}
	}

	if c.Priority != "" && item.Priority != c.Priority {
		return false
	}

	return within(item.CreatedAt, c.CreatedAfter, c.CreatedBefore) &&
		within(item.UpdatedAt, c.UpdatedAfter, c.UpdatedBefore)
}

// within checks after <= t <= before for the bounds that are set. A zero t
// never satisfies an active bound.
func within(t time.Time, after, before *time.Time) bool {
	if after == nil && before == nil {
		return true
	}
	if t.IsZero() {
		return false
	}
	if after != nil && t.Before(*after) {
		return false
	}
	if before != nil && t.After(*before) {
		return false
	}
	return true
}

// ValidateCriteria returns human-readable problems with c. It never fails.
func ValidateCriteria(c Criteria) []string {
	var msgs []string
	if c.Status != "" && !c.Status.Valid() {
		msgs = append(msgs, fmt.Sprintf("status %q must be one of completed, pending, all", string(c.Status)))
	}
	if c.Priority != "" && !c.Priority.Valid() {
		msgs = append(msgs, fmt.Sprintf("priority %q must be one of HIGH, MEDIUM, LOW", string(c.Priority)))
	}
	if c.CreatedAfter != nil && c.CreatedBefore != nil && c.CreatedAfter.After(*c.CreatedBefore) {
		msgs = append(msgs, "created_after must not be later than created_before")
	}
	if c.UpdatedAfter != nil && c.UpdatedBefore != nil && c.UpdatedAfter.After(*c.UpdatedBefore) {
		msgs = append(msgs, "updated_after must not be later than updated_before")
	}
	return msgs
}
