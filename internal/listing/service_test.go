package listing_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/listing"
	"github.com/rpggio/todolist/internal/memstore"
	"github.com/rpggio/todolist/internal/query"
	"github.com/rpggio/todolist/internal/repository/mocks"
	"github.com/rpggio/todolist/internal/search"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	todos   *todo.Service
	listing *listing.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := todo.NewService(memstore.New(), nil, todo.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	return &fixture{todos: todos, listing: listing.NewService(todos, search.Options{}, nil)}
}

func (f *fixture) create(t *testing.T, title string, priority todo.Priority, completed bool) *todo.Todo {
	t.Helper()
	ctx := context.Background()
	created, err := f.todos.Create(ctx, todo.CreateRequest{Title: title, Priority: priority})
	require.NoError(t, err)
	if completed {
		done := true
		created, err = f.todos.Update(ctx, created.ID, todo.Patch{Completed: &done})
		require.NoError(t, err)
	}
	return created
}

func (f *fixture) list(t *testing.T, params query.Params) *listing.Result {
	t.Helper()
	require.NoError(t, query.Validate(params))
	res, err := f.listing.List(context.Background(), query.Parse(params))
	require.NoError(t, err)
	return res
}

func titles(items []todo.Todo) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func keys(t *testing.T, res *listing.Result) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(res)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestList_PlainPath(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Low", todo.PriorityLow, false)
	f.create(t, "High", todo.PriorityHigh, false)
	f.create(t, "Medium", todo.PriorityMedium, true)

	res := f.list(t, nil)
	require.Equal(t, []string{"High", "Medium", "Low"}, titles(res.Todos))
	require.Equal(t, 3, res.Total)
	require.Equal(t, listing.DefaultPage, res.Page)
	require.Equal(t, listing.DefaultLimit, res.Limit)

	m := keys(t, res)
	require.NotContains(t, m, "filtered")
	require.NotContains(t, m, "query")

	res = f.list(t, query.Params{query.ParamPage: query.Scalar("2"), query.ParamLimit: query.Scalar("2")})
	require.Equal(t, []string{"Low"}, titles(res.Todos))
	require.Equal(t, 3, res.Total)

	res = f.list(t, query.Params{query.ParamPage: query.Scalar("5")})
	require.NotNil(t, res.Todos)
	require.Empty(t, res.Todos)
	require.Equal(t, `[]`, string(keys(t, res)["todos"]))
}

func TestList_SearchScenario(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Meeting with team", todo.PriorityMedium, false)
	f.create(t, "Code review", todo.PriorityMedium, true)
	f.create(t, "Team standup", todo.PriorityMedium, false)
	f.create(t, "Update docs", todo.PriorityMedium, true)

	res := f.list(t, query.Params{query.ParamQuery: query.Scalar("team")})
	require.ElementsMatch(t, []string{"Meeting with team", "Team standup"}, titles(res.Todos))
	require.Equal(t, []string{"Team standup", "Meeting with team"}, titles(res.Todos))
	require.Equal(t, 4, res.Total)
	require.NotNil(t, res.Filtered)
	require.Equal(t, 2, *res.Filtered)
	require.Equal(t, "team", res.Query.Q)

	m := keys(t, res)
	require.Contains(t, m, "filtered")
	require.Contains(t, m, "query")
}

func TestList_FilterScenario(t *testing.T) {
	f := newFixture(t)
	f.create(t, "High pending", todo.PriorityHigh, false)
	f.create(t, "High done", todo.PriorityHigh, true)
	f.create(t, "Low pending", todo.PriorityLow, false)

	res := f.list(t, query.Params{
		query.ParamStatus:   query.Scalar("pending"),
		query.ParamPriority: query.Scalar("HIGH"),
	})
	require.Equal(t, []string{"High pending"}, titles(res.Todos))
	require.Equal(t, 1, *res.Filtered)
	require.Equal(t, 3, res.Total)
	require.Equal(t, todo.StatusPending, res.Query.Status)
	require.Equal(t, todo.PriorityHigh, res.Query.Priority)
	require.Empty(t, res.Query.Q)
}

func TestList_PaginatesMatchedSet(t *testing.T) {
	f := newFixture(t)
	for _, title := range []string{"team a", "team b", "other", "team c", "team d", "misc"} {
		f.create(t, title, todo.PriorityMedium, false)
	}

	res := f.list(t, query.Params{
		query.ParamQuery: query.Scalar("team"),
		query.ParamPage:  query.Scalar("1"),
		query.ParamLimit: query.Scalar("2"),
	})
	require.Len(t, res.Todos, 2)
	require.Equal(t, 4, *res.Filtered)
	require.Equal(t, 6, res.Total)
	require.Equal(t, []string{"team d", "team c"}, titles(res.Todos))

	res = f.list(t, query.Params{
		query.ParamQuery: query.Scalar("team"),
		query.ParamPage:  query.Scalar("3"),
		query.ParamLimit: query.Scalar("2"),
	})
	require.Empty(t, res.Todos)
	require.Equal(t, 4, *res.Filtered)
}

func TestList_StatusAllTakesFilterPathWithoutEcho(t *testing.T) {
	f := newFixture(t)
	f.create(t, "One", todo.PriorityMedium, true)
	f.create(t, "Two", todo.PriorityMedium, false)

	res := f.list(t, query.Params{query.ParamStatus: query.Scalar("all")})
	require.Len(t, res.Todos, 2)
	require.Equal(t, 2, *res.Filtered)
	require.NotNil(t, res.Query)
	require.Equal(t, `{}`, string(keys(t, res)["query"]))
}

func TestList_NoMatchesIsEmptyNotError(t *testing.T) {
	f := newFixture(t)
	f.create(t, "One", todo.PriorityMedium, false)

	res := f.list(t, query.Params{query.ParamQuery: query.Scalar("zzz")})
	require.NotNil(t, res.Todos)
	require.Empty(t, res.Todos)
	require.Equal(t, 0, *res.Filtered)
	require.Equal(t, `0`, string(keys(t, res)["filtered"]))
}

func TestList_StoreError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TodoRepository{}
	repo.On("List", ctx, mock.Anything).Return(nil, 0, errors.New("boom"))

	svc := listing.NewService(repo, search.Options{}, nil)
	_, err := svc.List(ctx, query.Query{})
	require.Error(t, err)
	_, err = svc.List(ctx, query.Query{Search: "x"})
	require.Error(t, err)
}
