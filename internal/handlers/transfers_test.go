package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dayboard/internal/services"
	"dayboard/internal/store"
)

func TestCreateTransferConvertsToMinorUnits(t *testing.T) {
	var got services.TransferRequest
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{
		transferFn: func(_ context.Context, req services.TransferRequest) (string, error) {
			got = req
			return "transfer-1", nil
		},
	}, stubSnapshotService{})

	body := `{"amount":"50.00","from_account_id":"acc-1","to_account_id":"acc-2"}`
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateTransfer(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if got.Amount != 5000 || got.FromAccountID != "acc-1" || got.ToAccountID != "acc-2" {
		t.Fatalf("unexpected transfer request: %+v", got)
	}
}

func TestCreateTransferSameAccount(t *testing.T) {
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{
		transferFn: func(context.Context, services.TransferRequest) (string, error) {
			return "", services.ErrSameAccountTransfer
		},
	}, stubSnapshotService{})

	body := `{"amount":"50.00","from_account_id":"acc-1","to_account_id":"acc-1"}`
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateTransfer(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListTransfersUsesDayBounds(t *testing.T) {
	startOfDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	called := false
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{
		listBetweenFn: func(_ context.Context, from, to time.Time) ([]store.TransferWithNames, error) {
			called = true
			if !from.Equal(startOfDay) || !to.Equal(startOfDay.Add(24*time.Hour)) {
				t.Fatalf("unexpected day bounds: %v .. %v", from, to)
			}
			return nil, nil
		},
	}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := httptest.NewRequest(http.MethodGet, "/transfers?date=2025-03-10", nil)
	rr := httptest.NewRecorder()
	handler.ListTransfers(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !called {
		t.Fatal("expected the store to be queried")
	}
}
