package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/filter"
)

// Parameter names accepted by the list endpoint.
const (
	ParamQuery         = "q"
	ParamStatus        = "status"
	ParamPriority      = "priority"
	ParamCreatedAfter  = "created_after"
	ParamCreatedBefore = "created_before"
	ParamUpdatedAfter  = "updated_after"
	ParamUpdatedBefore = "updated_before"
	ParamPage          = "page"
	ParamLimit         = "limit"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Query is the typed form of a list request.
type Query struct {
	// Search is the trimmed search text; empty means absent.
	Search  string
	Filters filter.Criteria
	Page    *int
	Limit   *int
}

// HasSearchOrFilter reports whether the request needs the search/filter path.
func (q Query) HasSearchOrFilter() bool {
	return q.Search != "" || !q.Filters.IsZero()
}

// Parse converts params into a Query. It never fails: unusable values are
// dropped as if absent.
func Parse(params Params) Query {
	var q Query

	if v, ok := params.Get(ParamQuery).Value(); ok {
		q.Search = strings.TrimSpace(v)
	}

	if v, ok := params.Get(ParamStatus).Value(); ok {
		if s := todo.Status(v); s.Valid() {
			q.Filters.Status = s
		}
	}
	if v, ok := params.Get(ParamPriority).Value(); ok {
		if p := todo.Priority(v); p.Valid() {
			q.Filters.Priority = p
		}
	}

	q.Filters.CreatedAfter = parseTimeParam(params.Get(ParamCreatedAfter))
	q.Filters.CreatedBefore = parseTimeParam(params.Get(ParamCreatedBefore))
	q.Filters.UpdatedAfter = parseTimeParam(params.Get(ParamUpdatedAfter))
	q.Filters.UpdatedBefore = parseTimeParam(params.Get(ParamUpdatedBefore))

	q.Page = parseIntParam(params.Get(ParamPage))
	q.Limit = parseIntParam(params.Get(ParamLimit))

	return q
}

func parseTimeParam(p Param) *time.Time {
	v, ok := p.Value()
	if !ok {
		return nil
	}
	t, ok := ParseTime(v)
	if !ok {
		return nil
	}
	return &t
}

// ParseTime accepts RFC 3339 timestamps, with or without zone, and plain
// dates. Values without a zone are read as UTC.
func ParseTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseIntParam(p Param) *int {
	v, ok := p.Value()
	if !ok {
		return nil
	}
	n, ok := ParseInt(v)
	if !ok {
		return nil
	}
	return &n
}

// ParseInt reads a base-10 integer; integral decimals such as "2.0" are
// accepted too.
func ParseInt(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
