package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"dayboard/internal/aggregate"
	"dayboard/internal/money"
	"dayboard/internal/services"
	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/go-chi/chi/v5"
)

type createEntryRequest struct {
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	AccountID   string `json:"account_id"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

// ListEntries returns a day's expenses and incomes with category and account
// names joined in. ?date=YYYY-MM-DD selects the day.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	from, to := aggregate.DayBounds(date)
	entries, err := h.entries.ListBetween(r.Context(), from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load entries")
		return
	}
	respondJSON(w, http.StatusOK, normalizeEntries(entries))
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	if req.AccountID == "" {
		respondError(w, http.StatusBadRequest, "account_id is required")
		return
	}
	if req.CategoryID == "" {
		respondError(w, http.StatusBadRequest, "category_id is required")
		return
	}
	entryID, err := h.ledger.RecordEntry(r.Context(), services.EntryRequest{
		Amount:      amount,
		Kind:        req.Kind,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		switch err {
		case services.ErrInvalidEntryKind:
			respondError(w, http.StatusBadRequest, "invalid_kind")
		case services.ErrAccountNotFound:
			respondError(w, http.StatusNotFound, "account not found")
		default:
			respondError(w, http.StatusInternalServerError, "unable to record entry")
		}
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": entryID})
}

func (h *Handler) UpdateEntryDescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.entries.UpdateDescription(r.Context(), id, strings.TrimSpace(req.Description)); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update entry")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "entries", Action: "update"})
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// DeleteEntry removes an entry and reverses its effect on the account
// balance in the same transaction.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.ledger.DeleteEntry(r.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "entry not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to delete entry")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func normalizeEntries(entries []store.EntryWithNames) []map[string]any {
	normalized := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		normalized = append(normalized, map[string]any{
			"id":             entry.ID,
			"amount":         money.FormatMinor(entry.Amount),
			"amount_minor":   entry.Amount,
			"kind":           entry.Kind,
			"account_id":     entry.AccountID,
			"account_name":   nameOrUnknown(entry.AccountName),
			"category_id":    entry.CategoryID,
			"category_name":  nameOrUnknown(entry.CategoryName),
			"category_emoji": deref(entry.CategoryEmoji),
			"description":    entry.Description,
			"created_at":     entry.CreatedAt,
		})
	}
	return normalized
}
