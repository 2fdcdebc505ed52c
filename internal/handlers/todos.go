package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"dayboard/internal/aggregate"
	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createTodoRequest struct {
	Title   string `json:"title"`
	IsHabit bool   `json:"is_habit"`
}

// ListTodos returns the selected day's own todos plus the pending backlog
// carried over from earlier days.
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	startOfDay, endOfDay := aggregate.DayBounds(date)
	todos, err := h.todos.ListForDay(r.Context(), startOfDay, endOfDay)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load todos")
		return
	}
	dayTodos := aggregate.DayList(todos, startOfDay)
	respondJSON(w, http.StatusOK, map[string]any{
		"items":              normalizeTodos(dayTodos),
		"backlog":            normalizeTodos(aggregate.Backlog(todos, startOfDay)),
		"completion_percent": aggregate.CompletionPercent(dayTodos),
	})
}

func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	id := uuid.NewString()
	if err := h.todos.Create(r.Context(), id, title, req.IsHabit); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create todo")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "todos", Action: "insert"})
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ToggleTodo flips completion. Completing a backlog item checks it off on
// the day it was created, not today.
func (h *Handler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	todo, err := h.todos.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "todo not found")
		return
	}
	if err := h.todos.SetCompleted(r.Context(), id, !todo.IsCompleted); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update todo")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "todos", Action: "update"})
	respondJSON(w, http.StatusOK, map[string]any{"id": id, "is_completed": !todo.IsCompleted})
}

// RolloverTodo moves a backlog item onto today's list by restamping its
// creation time.
func (h *Handler) RolloverTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.todos.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "todo not found")
		return
	}
	if err := h.todos.Rollover(r.Context(), id, h.now()); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to roll todo over")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "todos", Action: "update"})
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.todos.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete todo")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "todos", Action: "delete"})
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func normalizeTodos(todos []store.Todo) []map[string]any {
	normalized := make([]map[string]any, 0, len(todos))
	for _, todo := range todos {
		normalized = append(normalized, map[string]any{
			"id":           todo.ID,
			"title":        todo.Title,
			"is_completed": todo.IsCompleted,
			"is_habit":     todo.IsHabit,
			"created_at":   todo.CreatedAt,
		})
	}
	return normalized
}
