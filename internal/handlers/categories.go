package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/google/uuid"
)

type createCategoryRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load categories")
		return
	}
	normalized := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		normalized = append(normalized, map[string]any{
			"id":         category.ID,
			"name":       category.Name,
			"emoji":      category.Emoji,
			"kind":       category.Kind,
			"color":      category.Color,
			"created_at": category.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	switch req.Kind {
	case store.CategoryTime, store.CategoryExpense, store.CategoryIncome:
	default:
		respondError(w, http.StatusBadRequest, "invalid_kind")
		return
	}
	id := uuid.NewString()
	if err := h.categories.Create(r.Context(), id, name, req.Emoji, req.Kind, req.Color); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create category")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "categories", Action: "insert"})
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}
