package todo

import (
	"time"

	"github.com/google/uuid"
)

// MigrateLegacy normalises records written before priorities and generated
// ids existed. It runs once when records are loaded, never on reads.
func MigrateLegacy(items []Todo, now time.Time) []Todo {
	out := make([]Todo, len(items))
	for i, t := range items {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Priority == "" {
			t.Priority = PriorityMedium
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.UpdatedAt.IsZero() || t.UpdatedAt.Before(t.CreatedAt) {
			t.UpdatedAt = t.CreatedAt
		}
		out[i] = t
	}
	return out
}
