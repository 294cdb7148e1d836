package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `todolist manages a single shared list of todos.

Each todo has a title, optional description, priority (HIGH, MEDIUM, LOW) and a
completed flag. Lists are ordered by priority, then newest first.

Workflow:
1) Browse with list_todos. Pass q and filters to narrow; results are paginated.
2) Use get_todo for one item, todo_stats for counts.
3) Write with create_todo / update_todo / toggle_todo / delete_todo.
4) Bulk: complete_all, delete_completed.

Read todolist://docs/list-query before building complex list_todos filters.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "todolist://docs/list-query",
		Name:        "list_query",
		Title:       "list_todos parameters",
		Description: "Search, filter and pagination parameters accepted by list_todos.",
		Content: `# list_todos parameters

- q: words that must all appear in the title or description (case-insensitive).
  1-100 characters; letters, digits, whitespace and - _ . , ! ? ' " @ # & ( ).
- status: completed, pending or all.
- priority: HIGH, MEDIUM or LOW.
- created_after, created_before, updated_after, updated_before: RFC 3339
  timestamps or YYYY-MM-DD dates. Bounds are inclusive; after must not be later
  than before.
- page (default 1) and limit (default 10, max 100).

Without q or filters the response has todos, total, page and limit. With any of
them it also has filtered (the number of matches before paging) and query (the
effective parameters).
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      doc.URI,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
