// Package testserver starts a fully wired todo API for tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/listing"
	"github.com/rpggio/todolist/internal/memstore"
	"github.com/rpggio/todolist/internal/search"
	"github.com/rpggio/todolist/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	Todos  *todo.Service
}

// Option configures the test server.
type Option func(*settings)

type settings struct {
	clock   func() time.Time
	repo    todo.Repository
	options transport.Options
}

// WithClock sets the todo service clock.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.clock = now }
}

// WithRepository replaces the default in-memory store.
func WithRepository(repo todo.Repository) Option {
	return func(s *settings) { s.repo = repo }
}

// WithTransportOptions overrides the router options.
func WithTransportOptions(opts transport.Options) Option {
	return func(s *settings) { s.options = opts }
}

// New starts a server backed by an in-memory store unless WithRepository is given.
func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	var svcOpts []todo.Option
	if cfg.clock != nil {
		svcOpts = append(svcOpts, todo.WithClock(cfg.clock))
	}

	repo := cfg.repo
	if repo == nil {
		repo = memstore.New()
	}
	todoSvc := todo.NewService(repo, nil, svcOpts...)
	listSvc := listing.NewService(todoSvc, search.Options{}, nil)

	server := httptest.NewServer(transport.NewServer(todoSvc, listSvc, cfg.options))
	t.Cleanup(server.Close)

	return &TestServer{Server: server, Todos: todoSvc}
}

// Do sends a request with an optional JSON body and decodes the envelope.
func (ts *TestServer) Do(t *testing.T, method, path string, body any) (int, Response) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// Create adds a todo through the API and returns it.
func (ts *TestServer) Create(t *testing.T, title, description string, priority todo.Priority) todo.Todo {
	t.Helper()

	body := map[string]any{"title": title}
	if description != "" {
		body["description"] = description
	}
	if priority != "" {
		body["priority"] = priority
	}
	status, resp := ts.Do(t, http.MethodPost, "/api/todos", body)
	require.Equal(t, http.StatusCreated, status)

	var created todo.Todo
	resp.DecodeData(t, &created)
	return created
}

// Response is the decoded envelope with raw data.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// DecodeData decodes the envelope data into dst.
func (r Response) DecodeData(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, dst))
}
