package handlers

import (
	"context"
	"time"

	"dayboard/internal/services"
	"dayboard/internal/store"
)

type CategoryStore interface {
	ListAll(ctx context.Context) ([]store.Category, error)
	GetByID(ctx context.Context, categoryID string) (store.Category, error)
	Create(ctx context.Context, id, name, emoji, kind, color string) error
}

type AccountStore interface {
	ListAll(ctx context.Context) ([]store.Account, error)
	GetByID(ctx context.Context, accountID string) (store.Account, error)
	Create(ctx context.Context, id, name, icon string, balance int64) error
	ListBalanceSummaries(ctx context.Context) ([]store.AccountBalanceSummary, error)
}

type TimeLogStore interface {
	InsertClosed(ctx context.Context, id, categoryID string, start, end time.Time) error
}

type TodoStore interface {
	ListForDay(ctx context.Context, from, to time.Time) ([]store.Todo, error)
	GetByID(ctx context.Context, id string) (store.Todo, error)
	Create(ctx context.Context, id, title string, isHabit bool) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Rollover(ctx context.Context, id string, now time.Time) error
	Delete(ctx context.Context, id string) error
}

type EntryStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]store.EntryWithNames, error)
	ListByAccount(ctx context.Context, accountID string) ([]store.EntryWithNames, error)
	UpdateDescription(ctx context.Context, id, description string) error
}

type TransferStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]store.TransferWithNames, error)
	ListByAccount(ctx context.Context, accountID string) ([]store.TransferWithNames, error)
}

type NoteStore interface {
	Insert(ctx context.Context, id, content string) error
	ListRecent(ctx context.Context, limit int) ([]store.Note, error)
}

type TrackerService interface {
	Start(ctx context.Context, categoryID string) (services.TrackerStatus, error)
	Stop(ctx context.Context) (services.TrackerStatus, error)
	Status() services.TrackerStatus
}

type LedgerService interface {
	RecordEntry(ctx context.Context, req services.EntryRequest) (string, error)
	Transfer(ctx context.Context, req services.TransferRequest) (string, error)
	DeleteEntry(ctx context.Context, entryID string) error
	DeleteTransfer(ctx context.Context, transferID string) error
}

type SnapshotService interface {
	Load(ctx context.Context, date time.Time) (services.Snapshot, error)
}
