package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayboard/internal/store"
)

func TestCreateNoteRequiresContent(t *testing.T) {
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"content":"  "}`))
	rr := httptest.NewRecorder()
	handler.CreateNote(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListNotesHonorsLimitOverride(t *testing.T) {
	var gotLimit int
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{
		listRecentFn: func(_ context.Context, limit int) ([]store.Note, error) {
			gotLimit = limit
			return nil, nil
		},
	}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := httptest.NewRequest(http.MethodGet, "/notes?limit=10", nil)
	rr := httptest.NewRecorder()
	handler.ListNotes(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotLimit != 10 {
		t.Fatalf("expected limit 10, got %d", gotLimit)
	}
}

func TestCreateCategoryRejectsUnknownKind(t *testing.T) {
	handler := newTestHandler(stubCategoryStore{}, stubAccountStore{}, stubTimeLogStore{}, stubTodoStore{}, stubEntryStore{}, stubTransferStore{}, stubNoteStore{}, stubTrackerService{}, stubLedgerService{}, stubSnapshotService{})

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Sleep","kind":"habit"}`))
	rr := httptest.NewRecorder()
	handler.CreateCategory(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
