package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/listing"
	"github.com/rpggio/todolist/internal/query"
)

// TodoService defines todo operations needed by MCP.
type TodoService interface {
	Create(ctx context.Context, req todo.CreateRequest) (*todo.Todo, error)
	Get(ctx context.Context, id string) (*todo.Todo, error)
	Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error)
	Toggle(ctx context.Context, id string) (*todo.Todo, error)
	Delete(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) (int, error)
	CompleteAll(ctx context.Context) (int, error)
	Stats(ctx context.Context) (todo.Stats, error)
}

// ListService answers list requests.
type ListService interface {
	List(ctx context.Context, q query.Query) (*listing.Result, error)
}

// Config contains server configuration.
type Config struct {
	Todos   TodoService
	Listing ListService
	Version string
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "todolist",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{todos: cfg.Todos, listing: cfg.Listing, logger: cfg.Logger})

	return server
}
