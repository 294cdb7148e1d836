package query

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/filter"
)

const (
	MaxSearchLength = 100
	MaxLimit        = 100
)

var searchCharset = regexp.MustCompile(`^[\p{L}\p{N}\s\-_.,!?'"@#&()]+$`)

// Validate checks raw list parameters and returns a *todo.ValidationError
// describing every problem, or nil.
func Validate(params Params) error {
	var msgs []string

	if v, ok := params.Get(ParamQuery).Value(); ok {
		switch n := utf8.RuneCountInString(v); {
		case n == 0:
			msgs = append(msgs, "q must not be empty")
		case n > MaxSearchLength:
			msgs = append(msgs, fmt.Sprintf("q must be at most %d characters", MaxSearchLength))
		case !searchCharset.MatchString(v):
			msgs = append(msgs, "q contains unsupported characters")
		}
	}

	if v, ok := params.Get(ParamStatus).Value(); ok && !todo.Status(v).Valid() {
		msgs = append(msgs, "status must be one of completed, pending, all")
	}
	if v, ok := params.Get(ParamPriority).Value(); ok && !todo.Priority(v).Valid() {
		msgs = append(msgs, "priority must be one of HIGH, MEDIUM, LOW")
	}

	for _, name := range []string{ParamCreatedAfter, ParamCreatedBefore, ParamUpdatedAfter, ParamUpdatedBefore} {
		if v, ok := params.Get(name).Value(); ok {
			if _, ok := ParseTime(v); !ok {
				msgs = append(msgs, fmt.Sprintf("%s must be a valid date or timestamp", name))
			}
		}
	}

	if v, ok := params.Get(ParamPage).Value(); ok {
		if n, ok := ParseInt(v); !ok || n < 1 {
			msgs = append(msgs, "page must be a positive integer")
		}
	}
	if v, ok := params.Get(ParamLimit).Value(); ok {
		if n, ok := ParseInt(v); !ok || n < 1 || n > MaxLimit {
			msgs = append(msgs, fmt.Sprintf("limit must be an integer between 1 and %d", MaxLimit))
		}
	}

	if len(msgs) == 0 {
		msgs = filter.ValidateCriteria(Parse(params).Filters)
	}

	return todo.NewValidationError(msgs...)
}
