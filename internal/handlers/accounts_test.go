package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dayboard/internal/store"
)

func TestListAccountsFormatsBalances(t *testing.T) {
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{
		listAllFn: func(context.Context) ([]store.Account, error) {
			return []store.Account{{ID: "acc-1", Name: "Checking", Balance: 123456}}, nil
		},
	}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rr := httptest.NewRecorder()
	handler.ListAccounts(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 1 || payload[0]["balance"] != "1234.56" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestCreateAccountOpensAtZero(t *testing.T) {
	var gotBalance int64 = -1
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{
		createFn: func(_ context.Context, id, name, icon string, balance int64) error {
			gotBalance = balance
			return nil
		},
	}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"name":"Savings","icon":"piggy"}`))
	rr := httptest.NewRecorder()
	handler.CreateAccount(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if gotBalance != 0 {
		t.Fatalf("expected zero opening balance, got %d", gotBalance)
	}
}

func TestAccountHistoryUnknownAccount(t *testing.T) {
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{
		getByIDFn: func(context.Context, string) (store.Account, error) {
			return store.Account{}, sql.ErrNoRows
		},
	}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := requestWithParam(http.MethodGet, "/accounts/ghost/history", "id", "ghost", nil)
	rr := httptest.NewRecorder()
	handler.AccountHistory(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAccountHistorySignsAmounts(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	other := "Savings"
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{
		getByIDFn: func(_ context.Context, accountID string) (store.Account, error) {
			return store.Account{ID: accountID, Name: "Checking", Balance: 8000}, nil
		},
	}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{
		listByAccountFn: func(context.Context, string) ([]store.EntryWithNames, error) {
			return []store.EntryWithNames{
				{Entry: store.Entry{ID: "entry-1", Amount: 1500, Kind: store.EntryExpense, AccountID: "acc-1", CreatedAt: now}},
			}, nil
		},
	}, stubTransferStore{
		listByAccountFn: func(context.Context, string) ([]store.TransferWithNames, error) {
			return []store.TransferWithNames{
				{
					Transfer:      store.Transfer{ID: "transfer-1", Amount: 2000, FromAccountID: "acc-1", ToAccountID: "acc-2", CreatedAt: now.Add(-time.Hour)},
					ToAccountName: &other,
				},
			}, nil
		},
	}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := requestWithParam(http.MethodGet, "/accounts/acc-1/history", "id", "acc-1", nil)
	rr := httptest.NewRecorder()
	handler.AccountHistory(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	history := payload["history"].([]any)
	if len(history) != 2 {
		t.Fatalf("expected two history items, got %v", history)
	}
	first := history[0].(map[string]any)
	if first["amount"] != "-15.00" {
		t.Fatalf("expected the expense signed negative, got %v", first["amount"])
	}
	second := history[1].(map[string]any)
	if second["amount"] != "-20.00" {
		t.Fatalf("expected the outgoing transfer signed negative, got %v", second["amount"])
	}
}

func TestSelfCheckFlagsDrift(t *testing.T) {
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{
		listSummariesFn: func(context.Context) ([]store.AccountBalanceSummary, error) {
			return []store.AccountBalanceSummary{
				{ID: "acc-1", Name: "Checking", StoredBalance: 10000, HistoryTotal: 10000, Difference: 0},
				{ID: "acc-2", Name: "Savings", StoredBalance: 5000, HistoryTotal: 4900, Difference: 100},
			}, nil
		},
	}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := httptest.NewRequest(http.MethodGet, "/accounts/self-check", nil)
	rr := httptest.NewRecorder()
	handler.SelfCheck(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload[0]["in_balance"] != true {
		t.Fatalf("expected acc-1 in balance: %#v", payload[0])
	}
	if payload[1]["in_balance"] != false {
		t.Fatalf("expected acc-2 flagged: %#v", payload[1])
	}
}
