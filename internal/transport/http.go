package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/listing"
	"github.com/rpggio/todolist/internal/metrics"
	"github.com/rpggio/todolist/internal/query"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

// TodoService defines todo operations needed by the REST API.
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

// Options configures the router.
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// Metrics mounts /metrics and records request metrics.
	Metrics bool
	// MCP, when set, is served at /mcp.
	MCP http.Handler
}

// Server wires HTTP handlers.
type Server struct {
	todos   TodoService
	listing ListService
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(todos TodoService, lists ListService, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(sloghttp.New(logger))
	r.Use(middleware.Recoverer)
	if opts.Metrics {
		r.Use(metrics.Middleware)
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Accept"},
		}).Handler)
	}

	srv := &Server{todos: todos, listing: lists, logger: logger}

	r.Get("/health", srv.handleHealth)
	if opts.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", srv.handleList)
		r.Post("/", srv.handleCreate)
		r.Get("/stats", srv.handleStats)
		r.Delete("/completed", srv.handleDeleteCompleted)
		r.Patch("/complete-all", srv.handleCompleteAll)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", srv.handleGet)
			r.Put("/", srv.handleUpdate)
			r.Patch("/", srv.handleUpdate)
			r.Delete("/", srv.handleDelete)
			r.Patch("/toggle", srv.handleToggle)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	WriteError(w, apiErr.Status, apiErr.Label, apiErr.Message)
}
