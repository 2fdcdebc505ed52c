package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"dayboard/internal/aggregate"
	"dayboard/internal/money"
	"dayboard/internal/services"
	"dayboard/internal/store"

	"github.com/go-chi/chi/v5"
)

type createTransferRequest struct {
	Amount        string `json:"amount"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	from, to := aggregate.DayBounds(date)
	transfers, err := h.transfers.ListBetween(r.Context(), from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transfers")
		return
	}
	respondJSON(w, http.StatusOK, normalizeTransfers(transfers))
}

// CreateTransfer moves money between two accounts. Both balance updates land
// in one transaction or neither does.
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	if req.FromAccountID == "" || req.ToAccountID == "" {
		respondError(w, http.StatusBadRequest, "both accounts are required")
		return
	}
	transferID, err := h.ledger.Transfer(r.Context(), services.TransferRequest{
		Amount:        amount,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
	})
	if err != nil {
		switch err {
		case services.ErrSameAccountTransfer:
			respondError(w, http.StatusBadRequest, "same_account")
		case services.ErrAccountNotFound:
			respondError(w, http.StatusNotFound, "account not found")
		default:
			respondError(w, http.StatusInternalServerError, "unable to record transfer")
		}
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": transferID})
}

func (h *Handler) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.ledger.DeleteTransfer(r.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "transfer not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to delete transfer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func normalizeTransfers(transfers []store.TransferWithNames) []map[string]any {
	normalized := make([]map[string]any, 0, len(transfers))
	for _, transfer := range transfers {
		normalized = append(normalized, map[string]any{
			"id":                transfer.ID,
			"amount":            money.FormatMinor(transfer.Amount),
			"amount_minor":      transfer.Amount,
			"from_account_id":   transfer.FromAccountID,
			"from_account_name": nameOrUnknown(transfer.FromAccountName),
			"to_account_id":     transfer.ToAccountID,
			"to_account_name":   nameOrUnknown(transfer.ToAccountName),
			"created_at":        transfer.CreatedAt,
		})
	}
	return normalized
}
