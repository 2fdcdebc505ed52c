package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"dayboard/internal/config"
	"dayboard/internal/services"
	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/go-chi/chi/v5"
)

type stubCategoryStore struct {
	listAllFn func(ctx context.Context) ([]store.Category, error)
	getByIDFn func(ctx context.Context, categoryID string) (store.Category, error)
	createFn  func(ctx context.Context, id, name, emoji, kind, color string) error
}

func (s stubCategoryStore) ListAll(ctx context.Context) ([]store.Category, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s stubCategoryStore) GetByID(ctx context.Context, categoryID string) (store.Category, error) {
	if s.getByIDFn == nil {
		return store.Category{}, nil
	}
	return s.getByIDFn(ctx, categoryID)
}

func (s stubCategoryStore) Create(ctx context.Context, id, name, emoji, kind, color string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, id, name, emoji, kind, color)
}

type stubAccountStore struct {
	listAllFn       func(ctx context.Context) ([]store.Account, error)
	getByIDFn       func(ctx context.Context, accountID string) (store.Account, error)
	createFn        func(ctx context.Context, id, name, icon string, balance int64) error
	listSummariesFn func(ctx context.Context) ([]store.AccountBalanceSummary, error)
}

func (s stubAccountStore) ListAll(ctx context.Context) ([]store.Account, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s stubAccountStore) GetByID(ctx context.Context, accountID string) (store.Account, error) {
	if s.getByIDFn == nil {
		return store.Account{}, nil
	}
	return s.getByIDFn(ctx, accountID)
}

func (s stubAccountStore) Create(ctx context.Context, id, name, icon string, balance int64) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, id, name, icon, balance)
}

func (s stubAccountStore) ListBalanceSummaries(ctx context.Context) ([]store.AccountBalanceSummary, error) {
	if s.listSummariesFn == nil {
		return nil, nil
	}
	return s.listSummariesFn(ctx)
}

type stubTimeLogStore struct {
	insertClosedFn func(ctx context.Context, id, categoryID string, start, end time.Time) error
}

func (s stubTimeLogStore) InsertClosed(ctx context.Context, id, categoryID string, start, end time.Time) error {
	if s.insertClosedFn == nil {
		return nil
	}
	return s.insertClosedFn(ctx, id, categoryID, start, end)
}

type stubTodoStore struct {
	listForDayFn   func(ctx context.Context, from, to time.Time) ([]store.Todo, error)
	getByIDFn      func(ctx context.Context, id string) (store.Todo, error)
	createFn       func(ctx context.Context, id, title string, isHabit bool) error
	setCompletedFn func(ctx context.Context, id string, completed bool) error
	rolloverFn     func(ctx context.Context, id string, now time.Time) error
	deleteFn       func(ctx context.Context, id string) error
}

func (s stubTodoStore) ListForDay(ctx context.Context, from, to time.Time) ([]store.Todo, error) {
	if s.listForDayFn == nil {
		return nil, nil
	}
	return s.listForDayFn(ctx, from, to)
}

func (s stubTodoStore) GetByID(ctx context.Context, id string) (store.Todo, error) {
	if s.getByIDFn == nil {
		return store.Todo{}, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s stubTodoStore) Create(ctx context.Context, id, title string, isHabit bool) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, id, title, isHabit)
}

func (s stubTodoStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	if s.setCompletedFn == nil {
		return nil
	}
	return s.setCompletedFn(ctx, id, completed)
}

func (s stubTodoStore) Rollover(ctx context.Context, id string, now time.Time) error {
	if s.rolloverFn == nil {
		return nil
	}
	return s.rolloverFn(ctx, id, now)
}

func (s stubTodoStore) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

type stubEntryStore struct {
	listBetweenFn       func(ctx context.Context, from, to time.Time) ([]store.EntryWithNames, error)
	listByAccountFn     func(ctx context.Context, accountID string) ([]store.EntryWithNames, error)
	updateDescriptionFn func(ctx context.Context, id, description string) error
}

func (s stubEntryStore) ListBetween(ctx context.Context, from, to time.Time) ([]store.EntryWithNames, error) {
	if s.listBetweenFn == nil {
		return nil, nil
	}
	return s.listBetweenFn(ctx, from, to)
}

func (s stubEntryStore) ListByAccount(ctx context.Context, accountID string) ([]store.EntryWithNames, error) {
	if s.listByAccountFn == nil {
		return nil, nil
	}
	return s.listByAccountFn(ctx, accountID)
}

func (s stubEntryStore) UpdateDescription(ctx context.Context, id, description string) error {
	if s.updateDescriptionFn == nil {
		return nil
	}
	return s.updateDescriptionFn(ctx, id, description)
}

type stubTransferStore struct {
	listBetweenFn   func(ctx context.Context, from, to time.Time) ([]store.TransferWithNames, error)
	listByAccountFn func(ctx context.Context, accountID string) ([]store.TransferWithNames, error)
}

func (s stubTransferStore) ListBetween(ctx context.Context, from, to time.Time) ([]store.TransferWithNames, error) {
	if s.listBetweenFn == nil {
		return nil, nil
	}
	return s.listBetweenFn(ctx, from, to)
}

func (s stubTransferStore) ListByAccount(ctx context.Context, accountID string) ([]store.TransferWithNames, error) {
	if s.listByAccountFn == nil {
		return nil, nil
	}
	return s.listByAccountFn(ctx, accountID)
}

type stubNoteStore struct {
	insertFn     func(ctx context.Context, id, content string) error
	listRecentFn func(ctx context.Context, limit int) ([]store.Note, error)
}

func (s stubNoteStore) Insert(ctx context.Context, id, content string) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, id, content)
}

func (s stubNoteStore) ListRecent(ctx context.Context, limit int) ([]store.Note, error) {
	if s.listRecentFn == nil {
		return nil, nil
	}
	return s.listRecentFn(ctx, limit)
}

type stubTrackerService struct {
	startFn  func(ctx context.Context, categoryID string) (services.TrackerStatus, error)
	stopFn   func(ctx context.Context) (services.TrackerStatus, error)
	statusFn func() services.TrackerStatus
}

func (s stubTrackerService) Start(ctx context.Context, categoryID string) (services.TrackerStatus, error) {
	if s.startFn == nil {
		return services.TrackerStatus{}, nil
	}
	return s.startFn(ctx, categoryID)
}

func (s stubTrackerService) Stop(ctx context.Context) (services.TrackerStatus, error) {
	if s.stopFn == nil {
		return services.TrackerStatus{}, nil
	}
	return s.stopFn(ctx)
}

func (s stubTrackerService) Status() services.TrackerStatus {
	if s.statusFn == nil {
		return services.TrackerStatus{State: services.StateIdle}
	}
	return s.statusFn()
}

type stubLedgerService struct {
	recordEntryFn    func(ctx context.Context, req services.EntryRequest) (string, error)
	transferFn       func(ctx context.Context, req services.TransferRequest) (string, error)
	deleteEntryFn    func(ctx context.Context, entryID string) error
	deleteTransferFn func(ctx context.Context, transferID string) error
}

func (s stubLedgerService) RecordEntry(ctx context.Context, req services.EntryRequest) (string, error) {
	if s.recordEntryFn == nil {
		return "", nil
	}
	return s.recordEntryFn(ctx, req)
}

func (s stubLedgerService) Transfer(ctx context.Context, req services.TransferRequest) (string, error) {
	if s.transferFn == nil {
		return "", nil
	}
	return s.transferFn(ctx, req)
}

func (s stubLedgerService) DeleteEntry(ctx context.Context, entryID string) error {
	if s.deleteEntryFn == nil {
		return nil
	}
	return s.deleteEntryFn(ctx, entryID)
}

func (s stubLedgerService) DeleteTransfer(ctx context.Context, transferID string) error {
	if s.deleteTransferFn == nil {
		return nil
	}
	return s.deleteTransferFn(ctx, transferID)
}

type stubSnapshotService struct {
	loadFn func(ctx context.Context, date time.Time) (services.Snapshot, error)
}

func (s stubSnapshotService) Load(ctx context.Context, date time.Time) (services.Snapshot, error) {
	if s.loadFn == nil {
		return services.Snapshot{Day: date}, nil
	}
	return s.loadFn(ctx, date)
}

func newTestHandler(categories CategoryStore, accounts AccountStore, timeLogs TimeLogStore, todos TodoStore, entries EntryStore, transfers TransferStore, notes NoteStore, tracker TrackerService, ledger LedgerService, snapshots SnapshotService) *Handler {
	cfg := config.Config{
		AppEnv:           "test",
		Port:             "0",
		AllowedOrigins:   "*",
		FeedWindow:       15,
		DiscardUnder:     time.Minute,
		RecentNotesLimit: 3,
	}
	handler := New(cfg, categories, accounts, timeLogs, todos, entries, transfers, notes, tracker, ledger, snapshots, websocket.NewHub())
	handler.now = func() time.Time { return testNow }
	return handler
}

var testNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func requestWithParam(method, target, key, value string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
