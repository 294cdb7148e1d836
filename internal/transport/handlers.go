package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/query"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	params := query.FromValues(r.URL.Query())
	if err := query.Validate(params); err != nil {
		s.writeErr(w, r, err)
		return
	}

	result, err := s.listing.List(r.Context(), query.Parse(params))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, result, "")
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createTodoBody
	if err := decodeBody(r.Body, createTodoSchema, &body); err != nil {
		s.writeErr(w, r, err)
		return
	}

	created, err := s.todos.Create(r.Context(), todo.CreateRequest{
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, created, "Todo created successfully")
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.todos.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, t, "")
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateTodoBody
	if err := decodeBody(r.Body, updateTodoSchema, &body); err != nil {
		s.writeErr(w, r, err)
		return
	}

	updated, err := s.todos.Update(r.Context(), chi.URLParam(r, "id"), body.patch())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, updated, "Todo updated successfully")
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	updated, err := s.todos.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, updated, "Todo toggled successfully")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.todos.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Todo deleted successfully")
}

func (s *Server) handleDeleteCompleted(w http.ResponseWriter, r *http.Request) {
	n, err := s.todos.DeleteCompleted(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, CountResult{Count: n}, "Completed todos deleted")
}

func (s *Server) handleCompleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := s.todos.CompleteAll(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, CountResult{Count: n}, "All todos marked as completed")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.todos.Stats(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, stats, "")
}
