package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/query"
)

type tools struct {
	todos   TodoService
	listing ListService
	logger  *slog.Logger
}

type listTodosInput struct {
	Q             string `json:"q,omitempty" jsonschema:"words that must all appear in title or description"`
	Status        string `json:"status,omitempty" jsonschema:"completed, pending or all"`
	Priority      string `json:"priority,omitempty" jsonschema:"HIGH, MEDIUM or LOW"`
	CreatedAfter  string `json:"created_after,omitempty" jsonschema:"RFC 3339 timestamp or YYYY-MM-DD"`
	CreatedBefore string `json:"created_before,omitempty" jsonschema:"RFC 3339 timestamp or YYYY-MM-DD"`
	UpdatedAfter  string `json:"updated_after,omitempty" jsonschema:"RFC 3339 timestamp or YYYY-MM-DD"`
	UpdatedBefore string `json:"updated_before,omitempty" jsonschema:"RFC 3339 timestamp or YYYY-MM-DD"`
	Page          *int   `json:"page,omitempty" jsonschema:"page number, default 1"`
	Limit         *int   `json:"limit,omitempty" jsonschema:"page size, default 10, max 100"`
}

// params converts tool arguments into list parameters so they pass through
// the same validation as query strings.
func (in listTodosInput) params() query.Params {
	params := query.Params{}
	set := func(name, value string) {
		if value != "" {
			params[name] = query.Scalar(value)
		}
	}
	set(query.ParamQuery, in.Q)
	set(query.ParamStatus, in.Status)
	set(query.ParamPriority, in.Priority)
	set(query.ParamCreatedAfter, in.CreatedAfter)
	set(query.ParamCreatedBefore, in.CreatedBefore)
	set(query.ParamUpdatedAfter, in.UpdatedAfter)
	set(query.ParamUpdatedBefore, in.UpdatedBefore)
	if in.Page != nil {
		params[query.ParamPage] = query.Scalar(strconv.Itoa(*in.Page))
	}
	if in.Limit != nil {
		params[query.ParamLimit] = query.Scalar(strconv.Itoa(*in.Limit))
	}
	return params
}

type idInput struct {
	ID string `json:"id" jsonschema:"todo id"`
}

type createTodoInput struct {
	Title       string `json:"title" jsonschema:"todo title, 1-200 characters"`
	Description string `json:"description,omitempty" jsonschema:"optional details, at most 1000 characters"`
	Priority    string `json:"priority,omitempty" jsonschema:"HIGH, MEDIUM or LOW; defaults to MEDIUM"`
}

type updateTodoInput struct {
	ID          string  `json:"id" jsonschema:"todo id"`
	Title       *string `json:"title,omitempty" jsonschema:"new title"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
	Completed   *bool   `json:"completed,omitempty" jsonschema:"new completion state"`
	Priority    *string `json:"priority,omitempty" jsonschema:"HIGH, MEDIUM or LOW"`
}

func (in updateTodoInput) patch() todo.Patch {
	p := todo.Patch{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
	}
	if in.Priority != nil {
		priority := todo.Priority(*in.Priority)
		p.Priority = &priority
	}
	return p
}

type emptyInput struct{}

type countOutput struct {
	Count int `json:"count"`
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_todos",
		Description: "List todos ordered by priority then newest first, optionally searched, filtered and paginated",
	}, t.listTodos)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_todo",
		Description: "Get a single todo by id",
	}, t.getTodo)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_todo",
		Description: "Create a pending todo",
	}, t.createTodo)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_todo",
		Description: "Update any of title, description, completed and priority on a todo",
	}, t.updateTodo)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_todo",
		Description: "Flip the completed flag of a todo",
	}, t.toggleTodo)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo by id",
	}, t.deleteTodo)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_completed",
		Description: "Delete every completed todo and report how many were removed",
	}, t.deleteCompleted)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "complete_all",
		Description: "Mark every pending todo completed and report how many changed",
	}, t.completeAll)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "todo_stats",
		Description: "Count total, completed and pending todos",
	}, t.stats)
}

func (t *tools) listTodos(ctx context.Context, _ *sdkmcp.CallToolRequest, in listTodosInput) (*sdkmcp.CallToolResult, any, error) {
	params := in.params()
	if err := query.Validate(params); err != nil {
		return t.fail(ctx, "list_todos", err)
	}
	result, err := t.listing.List(ctx, query.Parse(params))
	if err != nil {
		return t.fail(ctx, "list_todos", err)
	}
	return jsonResult(result)
}

func (t *tools) getTodo(ctx context.Context, _ *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, any, error) {
	item, err := t.todos.Get(ctx, in.ID)
	if err != nil {
		return t.fail(ctx, "get_todo", err)
	}
	return jsonResult(item)
}

func (t *tools) createTodo(ctx context.Context, _ *sdkmcp.CallToolRequest, in createTodoInput) (*sdkmcp.CallToolResult, any, error) {
	item, err := t.todos.Create(ctx, todo.CreateRequest{
		Title:       in.Title,
		Description: in.Description,
		Priority:    todo.Priority(in.Priority),
	})
	if err != nil {
		return t.fail(ctx, "create_todo", err)
	}
	return jsonResult(item)
}

func (t *tools) updateTodo(ctx context.Context, _ *sdkmcp.CallToolRequest, in updateTodoInput) (*sdkmcp.CallToolResult, any, error) {
	item, err := t.todos.Update(ctx, in.ID, in.patch())
	if err != nil {
		return t.fail(ctx, "update_todo", err)
	}
	return jsonResult(item)
}

func (t *tools) toggleTodo(ctx context.Context, _ *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, any, error) {
	item, err := t.todos.Toggle(ctx, in.ID)
	if err != nil {
		return t.fail(ctx, "toggle_todo", err)
	}
	return jsonResult(item)
}

func (t *tools) deleteTodo(ctx context.Context, _ *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, any, error) {
	if err := t.todos.Delete(ctx, in.ID); err != nil {
		return t.fail(ctx, "delete_todo", err)
	}
	return jsonResult(map[string]string{"id": in.ID, "status": "deleted"})
}

func (t *tools) deleteCompleted(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, any, error) {
	n, err := t.todos.DeleteCompleted(ctx)
	if err != nil {
		return t.fail(ctx, "delete_completed", err)
	}
	return jsonResult(countOutput{Count: n})
}

func (t *tools) completeAll(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, any, error) {
	n, err := t.todos.CompleteAll(ctx)
	if err != nil {
		return t.fail(ctx, "complete_all", err)
	}
	return jsonResult(countOutput{Count: n})
}

func (t *tools) stats(ctx context.Context, _ *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, any, error) {
	stats, err := t.todos.Stats(ctx)
	if err != nil {
		return t.fail(ctx, "todo_stats", err)
	}
	return jsonResult(stats)
}

// fail reports a domain error as a tool error result. Unexpected errors are
// logged and returned to the client without details.
func (t *tools) fail(ctx context.Context, tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	apiErr := MapError(err)
	if apiErr.Code == "INTERNAL" && t.logger != nil {
		t.logger.ErrorContext(ctx, "mcp tool failed", "tool", tool, "error", err)
	}
	res, _, marshalErr := jsonResult(apiErr)
	if marshalErr != nil {
		return nil, nil, marshalErr
	}
	res.IsError = true
	return res, nil, nil
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
