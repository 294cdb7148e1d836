package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// ValidateCreateInput validates fields required to create a todo.
func ValidateCreateInput(req CreateRequest) error {
	var msgs []string
	msgs = append(msgs, validateTitle(req.Title)...)
	msgs = append(msgs, validateDescription(req.Description)...)
	if req.Priority != "" && !req.Priority.Valid() {
		msgs = append(msgs, invalidPriority(req.Priority))
	}
	return NewValidationError(msgs...)
}

// ValidatePatch validates the supplied fields of a partial update.
func ValidatePatch(p Patch) error {
	var msgs []string
	if p.Title != nil {
		msgs = append(msgs, validateTitle(*p.Title)...)
	}
	if p.Description != nil {
		msgs = append(msgs, validateDescription(*p.Description)...)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		msgs = append(msgs, invalidPriority(*p.Priority))
	}
	return NewValidationError(msgs...)
}

func validateTitle(title string) []string {
	if strings.TrimSpace(title) == "" {
		return []string{"title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return []string{fmt.Sprintf("title must be at most %d characters", MaxTitleLength)}
	}
	return nil
}

func validateDescription(desc string) []string {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return []string{fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength)}
	}
	return nil
}

func invalidPriority(p Priority) string {
	return fmt.Sprintf("priority %q must be one of HIGH, MEDIUM, LOW", string(p))
}
