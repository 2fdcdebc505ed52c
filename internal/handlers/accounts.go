package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"dayboard/internal/aggregate"
	"dayboard/internal/money"
	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type createAccountRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	respondJSON(w, http.StatusOK, normalizeAccounts(accounts))
}

// CreateAccount opens an account at a zero balance. Funding happens through
// an income entry so the history always explains the balance.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	id := uuid.NewString()
	if err := h.accounts.Create(r.Context(), id, name, req.Icon, 0); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create account")
		return
	}
	h.hub.BroadcastChange(websocket.Event{Table: "accounts", Action: "insert"})
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// AccountHistory merges an account's entries and transfers into one signed,
// newest-first sequence.
func (h *Handler) AccountHistory(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	account, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}

	var entries []store.EntryWithNames
	var transfers []store.TransferWithNames
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		entries, err = h.entries.ListByAccount(ctx, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		transfers, err = h.transfers.ListByAccount(ctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load history")
		return
	}

	history := aggregate.AccountHistory(accountID, entries, transfers)
	normalized := make([]map[string]any, 0, len(history))
	for _, item := range history {
		normalized = append(normalized, map[string]any{
			"kind":         item.Kind,
			"id":           item.ID,
			"timestamp":    item.Timestamp,
			"label":        item.Label,
			"amount":       money.FormatSignedMinor(item.Amount),
			"amount_minor": item.Amount,
			"description":  item.Description,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"account": map[string]any{
			"id":      account.ID,
			"name":    account.Name,
			"icon":    account.Icon,
			"balance": money.FormatMinor(account.Balance),
		},
		"history": normalized,
	})
}

// SelfCheck recomputes every balance from entry and transfer history and
// reports any drift against the stored running totals.
func (h *Handler) SelfCheck(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.accounts.ListBalanceSummaries(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to run self check")
		return
	}
	normalized := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		normalized = append(normalized, map[string]any{
			"account_id":     summary.ID,
			"name":           summary.Name,
			"stored_balance": money.FormatMinor(summary.StoredBalance),
			"history_total":  money.FormatMinor(summary.HistoryTotal),
			"difference":     money.FormatSignedMinor(summary.Difference),
			"in_balance":     summary.Difference == 0,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func normalizeAccounts(accounts []store.Account) []map[string]any {
	normalized := make([]map[string]any, 0, len(accounts))
	for _, account := range accounts {
		normalized = append(normalized, map[string]any{
			"id":            account.ID,
			"name":          account.Name,
			"icon":          account.Icon,
			"balance":       money.FormatMinor(account.Balance),
			"balance_minor": account.Balance,
			"created_at":    account.CreatedAt,
		})
	}
	return normalized
}
