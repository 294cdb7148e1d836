package transport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/sqlite"
	"github.com/rpggio/todolist/internal/testserver"
	"github.com/rpggio/todolist/internal/transport"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *testserver.TestServer {
	t.Helper()
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return testserver.New(t, testserver.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
}

type listData struct {
	Todos    []todo.Todo     `json:"todos"`
	Total    int             `json:"total"`
	Filtered *int            `json:"filtered"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
	Query    json.RawMessage `json:"query"`
}

func titles(items []todo.Todo) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestHealth(t *testing.T) {
	ts := newServer(t)

	resp, err := ts.Server.Client().Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTodoCRUD(t *testing.T) {
	ts := newServer(t)

	created := ts.Create(t, "Write report", "quarterly numbers", todo.PriorityHigh)
	require.NotEmpty(t, created.ID)
	require.Equal(t, todo.PriorityHigh, created.Priority)
	require.False(t, created.Completed)

	status, resp := ts.Do(t, http.MethodGet, "/api/todos/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)
	var fetched todo.Todo
	resp.DecodeData(t, &fetched)
	require.Equal(t, created.Title, fetched.Title)
	require.Equal(t, created.Description, fetched.Description)

	status, resp = ts.Do(t, http.MethodPatch, "/api/todos/"+created.ID, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, status)
	var updated todo.Todo
	resp.DecodeData(t, &updated)
	require.True(t, updated.Completed)
	require.Equal(t, "Write report", updated.Title)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	status, resp = ts.Do(t, http.MethodPut, "/api/todos/"+created.ID, map[string]any{"title": "Write final report"})
	require.Equal(t, http.StatusOK, status)
	resp.DecodeData(t, &updated)
	require.Equal(t, "Write final report", updated.Title)
	require.True(t, updated.Completed)

	status, resp = ts.Do(t, http.MethodPatch, "/api/todos/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, status)
	resp.DecodeData(t, &updated)
	require.False(t, updated.Completed)

	status, resp = ts.Do(t, http.MethodDelete, "/api/todos/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)

	status, resp = ts.Do(t, http.MethodGet, "/api/todos/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.False(t, resp.Success)
	require.Equal(t, "Todo not found", resp.Error)
}

func TestCreate_DefaultsPriority(t *testing.T) {
	ts := newServer(t)

	created := ts.Create(t, "Buy milk", "", "")
	require.Equal(t, todo.PriorityMedium, created.Priority)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreate_RejectsInvalidBodies(t *testing.T) {
	ts := newServer(t)

	cases := []struct {
		name  string
		body  any
		label string
	}{
		{name: "missing title", body: map[string]any{"description": "x"}, label: "Validation failed"},
		{name: "blank title", body: map[string]any{"title": "   "}, label: "Validation failed"},
		{name: "bad priority", body: map[string]any{"title": "x", "priority": "URGENT"}, label: "Validation failed"},
		{name: "unknown field", body: map[string]any{"title": "x", "owner": "me"}, label: "Validation failed"},
		{name: "malformed json", body: `{"title":`, label: "Invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := ts.Do(t, http.MethodPost, "/api/todos", tc.body)
			require.Equal(t, http.StatusBadRequest, status)
			require.False(t, resp.Success)
			require.Equal(t, tc.label, resp.Error)
			require.NotEmpty(t, resp.Message)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	ts := newServer(t)

	status, resp := ts.Do(t, http.MethodPatch, "/api/todos/missing", map[string]any{"completed": true})
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Todo not found", resp.Error)

	status, _ = ts.Do(t, http.MethodPatch, "/api/todos/missing/toggle", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = ts.Do(t, http.MethodDelete, "/api/todos/missing", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestList_PlainPath(t *testing.T) {
	ts := newServer(t)
	ts.Create(t, "Low", "", todo.PriorityLow)
	ts.Create(t, "High", "", todo.PriorityHigh)
	ts.Create(t, "Medium", "", todo.PriorityMedium)

	status, resp := ts.Do(t, http.MethodGet, "/api/todos", nil)
	require.Equal(t, http.StatusOK, status)

	var raw map[string]json.RawMessage
	resp.DecodeData(t, &raw)
	require.NotContains(t, raw, "filtered")
	require.NotContains(t, raw, "query")

	var data listData
	resp.DecodeData(t, &data)
	require.Equal(t, []string{"High", "Medium", "Low"}, titles(data.Todos))
	require.Equal(t, 3, data.Total)
	require.Equal(t, 1, data.Page)
	require.Equal(t, 10, data.Limit)
}

func TestList_EmptyStore(t *testing.T) {
	ts := newServer(t)

	_, resp := ts.Do(t, http.MethodGet, "/api/todos?page=5", nil)
	var raw map[string]json.RawMessage
	resp.DecodeData(t, &raw)
	require.JSONEq(t, `[]`, string(raw["todos"]))
}

func TestList_SearchAndFilter(t *testing.T) {
	ts := newServer(t)
	ts.Create(t, "Team meeting", "", todo.PriorityHigh)
	ts.Create(t, "Groceries", "", todo.PriorityLow)
	ts.Create(t, "Plan offsite", "with the team", todo.PriorityMedium)
	done := ts.Create(t, "Fix bug", "", todo.PriorityHigh)
	status, _ := ts.Do(t, http.MethodPatch, "/api/todos/"+done.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, status)

	status, resp := ts.Do(t, http.MethodGet, "/api/todos?q=team", nil)
	require.Equal(t, http.StatusOK, status)
	var data listData
	resp.DecodeData(t, &data)
	require.Equal(t, 4, data.Total)
	require.NotNil(t, data.Filtered)
	require.Equal(t, 2, *data.Filtered)
	require.ElementsMatch(t, []string{"Team meeting", "Plan offsite"}, titles(data.Todos))
	require.JSONEq(t, `{"q":"team"}`, string(data.Query))

	_, resp = ts.Do(t, http.MethodGet, "/api/todos?status=pending&priority=HIGH", nil)
	data = listData{}
	resp.DecodeData(t, &data)
	require.Equal(t, []string{"Team meeting"}, titles(data.Todos))
	require.Equal(t, 1, *data.Filtered)
	require.JSONEq(t, `{"status":"pending","priority":"HIGH"}`, string(data.Query))

	_, resp = ts.Do(t, http.MethodGet, "/api/todos?status=all&limit=2&page=2", nil)
	data = listData{}
	resp.DecodeData(t, &data)
	require.Equal(t, 4, *data.Filtered)
	require.Len(t, data.Todos, 2)
	require.Equal(t, 2, data.Page)
	require.Equal(t, 2, data.Limit)
	require.JSONEq(t, `{}`, string(data.Query))
}

func TestList_ValidationErrors(t *testing.T) {
	ts := newServer(t)

	cases := []string{
		"/api/todos?status=done",
		"/api/todos?priority=urgent",
		"/api/todos?limit=0",
		"/api/todos?limit=101",
		"/api/todos?page=-1",
		"/api/todos?created_after=yesterday",
		"/api/todos?q=%3Cscript%3E",
		"/api/todos?created_after=2025-02-01&created_before=2025-01-01",
	}
	for _, path := range cases {
		t.Run(path, func(t *testing.T) {
			status, resp := ts.Do(t, http.MethodGet, path, nil)
			require.Equal(t, http.StatusBadRequest, status)
			require.False(t, resp.Success)
			require.Equal(t, "Validation failed", resp.Error)
			require.NotEmpty(t, resp.Message)
		})
	}
}

func TestBulkOperations(t *testing.T) {
	ts := newServer(t)
	first := ts.Create(t, "One", "", "")
	ts.Create(t, "Two", "", "")
	ts.Create(t, "Three", "", "")
	_, _ = ts.Do(t, http.MethodPatch, "/api/todos/"+first.ID+"/toggle", nil)

	status, resp := ts.Do(t, http.MethodGet, "/api/todos/stats", nil)
	require.Equal(t, http.StatusOK, status)
	var stats todo.Stats
	resp.DecodeData(t, &stats)
	require.Equal(t, todo.Stats{Total: 3, Completed: 1, Pending: 2}, stats)

	status, resp = ts.Do(t, http.MethodPatch, "/api/todos/complete-all", nil)
	require.Equal(t, http.StatusOK, status)
	var count transport.CountResult
	resp.DecodeData(t, &count)
	require.Equal(t, 2, count.Count)

	status, resp = ts.Do(t, http.MethodDelete, "/api/todos/completed", nil)
	require.Equal(t, http.StatusOK, status)
	resp.DecodeData(t, &count)
	require.Equal(t, 3, count.Count)

	_, resp = ts.Do(t, http.MethodGet, "/api/todos/stats", nil)
	resp.DecodeData(t, &stats)
	require.Equal(t, todo.Stats{}, stats)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := testserver.New(t, testserver.WithTransportOptions(transport.Options{Metrics: true}))
	ts.Create(t, "Observe", "", "")

	resp, err := ts.Server.Client().Get(ts.Server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := testserver.New(t, testserver.WithTransportOptions(transport.Options{
		AllowedOrigins: []string{"http://localhost:5173"},
	}))

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+"/api/todos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWriteEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	transport.WriteSuccess(rec, http.StatusCreated, transport.CountResult{Count: 2}, "done")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"success":true,"data":{"count":2},"message":"done"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	transport.WriteError(rec, http.StatusNotFound, "Todo not found", "no todo with this id")
	require.JSONEq(t, `{"success":false,"error":"Todo not found","message":"no todo with this id"}`, rec.Body.String())
}

func TestTodoCRUD_SQLiteBackend(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := testserver.New(t,
		testserver.WithRepository(sqlite.NewTodoRepository(db)),
		testserver.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)

	low := ts.Create(t, "Water plants", "", todo.PriorityLow)
	ts.Create(t, "Pay rent", "before the 5th", todo.PriorityHigh)
	ts.Create(t, "Call plumber", "", "")

	_, resp := ts.Do(t, http.MethodGet, "/api/todos", nil)
	var data listData
	resp.DecodeData(t, &data)
	require.Equal(t, []string{"Pay rent", "Call plumber", "Water plants"}, titles(data.Todos))

	status, resp := ts.Do(t, http.MethodPatch, "/api/todos/"+low.ID, map[string]any{"priority": "HIGH", "completed": true})
	require.Equal(t, http.StatusOK, status)
	var updated todo.Todo
	resp.DecodeData(t, &updated)
	require.Equal(t, todo.PriorityHigh, updated.Priority)
	require.True(t, updated.Completed)
	require.Equal(t, low.CreatedAt, updated.CreatedAt)

	_, resp = ts.Do(t, http.MethodGet, "/api/todos?q=rent&priority=HIGH", nil)
	data = listData{}
	resp.DecodeData(t, &data)
	require.Equal(t, []string{"Pay rent"}, titles(data.Todos))
	require.Equal(t, 3, data.Total)

	status, _ = ts.Do(t, http.MethodDelete, "/api/todos/"+low.ID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = ts.Do(t, http.MethodGet, "/api/todos/"+low.ID, nil)
	require.Equal(t, http.StatusNotFound, status)
}
