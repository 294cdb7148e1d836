// Package search matches todos against whitespace-separated query tokens.
package search

import (
	"strings"

	"github.com/rpggio/todolist/internal/domain/todo"
)

// Field names a searchable todo attribute.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPriority    Field = "priority"
)

// DefaultFields are searched when Options.Fields is empty.
var DefaultFields = []Field{FieldTitle, FieldDescription}

// Options configures matching.
type Options struct {
	CaseSensitive bool
	Fields        []Field
}

// Match returns the todos whose configured fields contain every query token,
// in input order. A blank query returns items unchanged.
func Match(items []todo.Todo, query string, opts Options) []todo.Todo {
	tokens := Tokenize(query, opts.CaseSensitive)
	if len(tokens) == 0 {
		return items
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	out := make([]todo.Todo, 0, len(items))
	for _, item := range items {
		text := searchableText(item, fields, opts.CaseSensitive)
		if containsAll(text, tokens) {
			out = append(out, item)
		}
	}
	return out
}

// Tokenize normalises query and splits it on whitespace.
func Tokenize(query string, caseSensitive bool) []string {
	query = strings.TrimSpace(query)
	if !caseSensitive {
		query = strings.ToLower(query)
	}
	return strings.Fields(query)
}

func searchableText(item todo.Todo, fields []Field, caseSensitive bool) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := fieldValue(item, f); v != "" {
			parts = append(parts, v)
		}
	}
	text := strings.Join(parts, " ")
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	return text
}

func fieldValue(item todo.Todo, f Field) string {
	switch f {
	case FieldTitle:
		return item.Title
	case FieldDescription:
		return item.Description
	case FieldPriority:
		return string(item.Priority)
	}
	return ""
}

func containsAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
