package todo

// ListOptions selects a page of the ordered todo list. A zero Page or Limit
// returns everything.
type ListOptions struct {
	Page  int
	Limit int
}

// Paginate returns the 1-based page of items. Pages past the end yield an
// empty, non-nil slice.
func Paginate(items []Todo, page, limit int) []Todo {
	if page <= 0 || limit <= 0 {
		return items
	}
	if page-1 > len(items)/limit {
		return []Todo{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []Todo{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
