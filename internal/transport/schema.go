package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxBodyBytes = 1 << 20

var createTodoSchema = jsonschema.MustCompileString("create_todo.json", fmt.Sprintf(`{
	"type": "object",
	"additionalProperties": false,
	"required": ["title"],
	"properties": {
		"title": {"type": "string", "minLength": 1, "maxLength": %d, "pattern": "\\S"},
		"description": {"type": "string", "maxLength": %d},
		"priority": {"enum": ["HIGH", "MEDIUM", "LOW"]}
	}
}`, todo.MaxTitleLength, todo.MaxDescriptionLength))

var updateTodoSchema = jsonschema.MustCompileString("update_todo.json", fmt.Sprintf(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"title": {"type": "string", "minLength": 1, "maxLength": %d, "pattern": "\\S"},
		"description": {"type": "string", "maxLength": %d},
		"completed": {"type": "boolean"},
		"priority": {"enum": ["HIGH", "MEDIUM", "LOW"]}
	}
}`, todo.MaxTitleLength, todo.MaxDescriptionLength))

type createTodoBody struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    todo.Priority `json:"priority"`
}

type updateTodoBody struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Completed   *bool          `json:"completed"`
	Priority    *todo.Priority `json:"priority"`
}

func (b updateTodoBody) patch() todo.Patch {
	return todo.Patch{
		Title:       b.Title,
		Description: b.Description,
		Completed:   b.Completed,
		Priority:    b.Priority,
	}
}

// decodeBody validates the JSON body against schema and decodes it into dst.
func decodeBody(r io.Reader, schema *jsonschema.Schema, dst any) error {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if err := schema.Validate(doc); err != nil {
		return todo.NewValidationError(schemaMessages(err)...)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

func schemaMessages(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var msgs []string
	collectSchemaMessages(ve, &msgs)
	if len(msgs) == 0 {
		msgs = append(msgs, ve.Message)
	}
	return msgs
}

func collectSchemaMessages(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		field := strings.TrimPrefix(strings.TrimPrefix(err.InstanceLocation, "#"), "/")
		if field == "" {
			*msgs = append(*msgs, err.Message)
			return
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", field, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaMessages(cause, msgs)
	}
}
