package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"dayboard/internal/websocket"

	"github.com/google/uuid"
)

type createNoteRequest struct {
	Content string `json:"content"`
}

// ListNotes returns the newest notes first. ?limit= overrides the configured
// default.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.RecentNotesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = parsed
	}
	notes, err := h.notes.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load notes")
		return
	}
	respondJSON(w, http.StatusOK, normalizeNotes(notes))
}

// CreateNote appends to the journal. Notes are never edited or deleted.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	id := uuid.NewString()
	if err := h.notes.Insert(r.Context(), id, content); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save note")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "notes", Action: "insert"})
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}
