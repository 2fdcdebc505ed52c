package services

import (
	"context"
	"sync"
	"time"

	"dayboard/internal/aggregate"
	"dayboard/internal/store"

	"golang.org/x/sync/errgroup"
)

type SnapshotCategoryStore interface {
	ListAll(ctx context.Context) ([]store.Category, error)
}

type SnapshotAccountStore interface {
	ListAll(ctx context.Context) ([]store.Account, error)
}

type SnapshotTimeLogStore interface {
	ListStartedBetween(ctx context.Context, from, to time.Time) ([]store.TimeLog, error)
}

type SnapshotTodoStore interface {
	ListForDay(ctx context.Context, from, to time.Time) ([]store.Todo, error)
}

type SnapshotEntryStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]store.EntryWithNames, error)
}

type SnapshotTransferStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]store.TransferWithNames, error)
}

// Snapshot is one atomically-applied read of everything the dashboard needs
// for a day. Each slice was swapped in whole from a single fetch.
type Snapshot struct {
	Day        time.Time
	Categories []store.Category
	Accounts   []store.Account
	TimeLogs   []store.TimeLog
	Todos      []store.Todo
	Entries    []store.EntryWithNames
	Transfers  []store.TransferWithNames
	FetchedAt  time.Time

	seq uint64
}

// SnapshotService fetches the daily snapshot with one parallel query per
// table. Every Load is tagged with a monotonic sequence number; a fetch that
// finishes after a newer one has been applied is discarded, so a stale
// in-flight response can never overwrite fresher data.
type SnapshotService struct {
	categories SnapshotCategoryStore
	accounts   SnapshotAccountStore
	timeLogs   SnapshotTimeLogStore
	todos      SnapshotTodoStore
	entries    SnapshotEntryStore
	transfers  SnapshotTransferStore
	now        func() time.Time

	mu      sync.Mutex
	nextSeq uint64
	applied uint64
	current Snapshot
}

func NewSnapshotService(categories SnapshotCategoryStore, accounts SnapshotAccountStore, timeLogs SnapshotTimeLogStore, todos SnapshotTodoStore, entries SnapshotEntryStore, transfers SnapshotTransferStore, now func() time.Time) *SnapshotService {
	return &SnapshotService{
		categories: categories,
		accounts:   accounts,
		timeLogs:   timeLogs,
		todos:      todos,
		entries:    entries,
		transfers:  transfers,
		now:        now,
	}
}

// Load fetches all slices for the day containing date and applies the result
// unless a newer load has landed meanwhile. It returns the snapshot currently
// applied after this load settles.
func (s *SnapshotService) Load(ctx context.Context, date time.Time) (Snapshot, error) {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	from, to := aggregate.DayBounds(date)
	snap := Snapshot{Day: from, seq: seq}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.categories.ListAll(gctx)
		snap.Categories = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.accounts.ListAll(gctx)
		snap.Accounts = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.timeLogs.ListStartedBetween(gctx, from, to)
		snap.TimeLogs = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.todos.ListForDay(gctx, from, to)
		snap.Todos = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.entries.ListBetween(gctx, from, to)
		snap.Entries = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.transfers.ListBetween(gctx, from, to)
		snap.Transfers = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	snap.FetchedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.applied {
		s.applied = seq
		s.current = snap
	}
	return s.current, nil
}

// Current returns the last applied snapshot without fetching.
func (s *SnapshotService) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
