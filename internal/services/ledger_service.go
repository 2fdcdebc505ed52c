package services

import (
	"context"
	"database/sql"
	"errors"

	"dayboard/internal/db"
	"dayboard/internal/store"
	"dayboard/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidEntryKind    = errors.New("invalid entry kind")
	ErrSameAccountTransfer = errors.New("cannot transfer to same account")
	ErrAccountNotFound     = errors.New("account not found")
)

type LedgerAccountStore interface {
	GetForUpdate(ctx context.Context, tx store.Getter, accountID string) (store.Account, error)
	AdjustBalance(ctx context.Context, tx store.Execer, accountID string, delta int64) (int64, error)
}

type LedgerEntryStore interface {
	GetByID(ctx context.Context, id string) (store.Entry, error)
	Insert(ctx context.Context, tx store.Execer, input store.EntryInput) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type LedgerTransferStore interface {
	GetByID(ctx context.Context, id string) (store.Transfer, error)
	Insert(ctx context.Context, tx store.Execer, id string, amount int64, fromAccountID, toAccountID string) error
	Delete(ctx context.Context, tx store.Execer, id string) error
}

// LedgerService applies money movements. Every mutation that touches an
// account balance runs inside one transaction with the row it creates or
// removes, so balances and history cannot drift apart.
type LedgerService struct {
	txRunner  db.TxRunner
	accounts  LedgerAccountStore
	entries   LedgerEntryStore
	transfers LedgerTransferStore
	hub       Broadcaster
	newID     func() string
}

func NewLedgerService(txRunner db.TxRunner, accounts LedgerAccountStore, entries LedgerEntryStore, transfers LedgerTransferStore, hub Broadcaster) *LedgerService {
	return &LedgerService{
		txRunner:  txRunner,
		accounts:  accounts,
		entries:   entries,
		transfers: transfers,
		hub:       hub,
		newID:     uuid.NewString,
	}
}

type EntryRequest struct {
	Amount      int64
	Kind        string
	AccountID   string
	CategoryID  string
	Description string
}

func (s *LedgerService) RecordEntry(ctx context.Context, req EntryRequest) (string, error) {
	if req.Amount <= 0 {
		return "", ErrInvalidAmount
	}
	if req.Kind != store.EntryExpense && req.Kind != store.EntryIncome {
		return "", ErrInvalidEntryKind
	}
	entryID := s.newID()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		delta := req.Amount
		if req.Kind == store.EntryExpense {
			delta = -delta
		}
		if err := s.adjustBalance(ctx, tx, req.AccountID, delta); err != nil {
			return err
		}
		return s.entries.Insert(ctx, tx, store.EntryInput{
			ID:          entryID,
			Amount:      req.Amount,
			Kind:        req.Kind,
			AccountID:   req.AccountID,
			CategoryID:  req.CategoryID,
			Description: req.Description,
		})
	})
	if err != nil {
		return "", err
	}
	s.hub.BroadcastChange(websocket.Event{Table: "entries", Action: "create"})
	return entryID, nil
}

type TransferRequest struct {
	Amount        int64
	FromAccountID string
	ToAccountID   string
}

// Transfer debits one account and credits the other atomically. A failure
// between the two sides rolls the whole movement back.
func (s *LedgerService) Transfer(ctx context.Context, req TransferRequest) (string, error) {
	if req.Amount <= 0 {
		return "", ErrInvalidAmount
	}
	if req.FromAccountID == req.ToAccountID {
		return "", ErrSameAccountTransfer
	}
	transferID := s.newID()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.lockBoth(ctx, tx, req.FromAccountID, req.ToAccountID); err != nil {
			return err
		}
		if err := s.adjustBalance(ctx, tx, req.FromAccountID, -req.Amount); err != nil {
			return err
		}
		if err := s.adjustBalance(ctx, tx, req.ToAccountID, req.Amount); err != nil {
			return err
		}
		return s.transfers.Insert(ctx, tx, transferID, req.Amount, req.FromAccountID, req.ToAccountID)
	})
	if err != nil {
		return "", err
	}
	s.hub.BroadcastChange(websocket.Event{Table: "transfers", Action: "create"})
	return transferID, nil
}

// DeleteEntry removes a ledger entry and reverses its balance effect in the
// same transaction.
func (s *LedgerService) DeleteEntry(ctx context.Context, entryID string) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		delta := entry.Amount
		if entry.Kind == store.EntryIncome {
			delta = -delta
		}
		if err := s.adjustBalance(ctx, tx, entry.AccountID, delta); err != nil {
			return err
		}
		return s.entries.Delete(ctx, tx, entryID)
	})
	if err != nil {
		return err
	}
	s.hub.BroadcastChange(websocket.Event{Table: "entries", Action: "delete"})
	return nil
}

// DeleteTransfer removes a transfer and reverses both sides atomically.
func (s *LedgerService) DeleteTransfer(ctx context.Context, transferID string) error {
	transfer, err := s.transfers.GetByID(ctx, transferID)
	if err != nil {
		return err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.lockBoth(ctx, tx, transfer.FromAccountID, transfer.ToAccountID); err != nil {
			return err
		}
		if err := s.adjustBalance(ctx, tx, transfer.FromAccountID, transfer.Amount); err != nil {
			return err
		}
		if err := s.adjustBalance(ctx, tx, transfer.ToAccountID, -transfer.Amount); err != nil {
			return err
		}
		return s.transfers.Delete(ctx, tx, transferID)
	})
	if err != nil {
		return err
	}
	s.hub.BroadcastChange(websocket.Event{Table: "transfers", Action: "delete"})
	return nil
}

func (s *LedgerService) adjustBalance(ctx context.Context, tx store.Execer, accountID string, delta int64) error {
	affected, err := s.accounts.AdjustBalance(ctx, tx, accountID, delta)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// lockBoth takes row locks on both accounts in a deterministic order so two
// opposite transfers cannot deadlock.
func (s *LedgerService) lockBoth(ctx context.Context, tx store.Getter, firstID, secondID string) error {
	leftID, rightID := firstID, secondID
	if rightID < leftID {
		leftID, rightID = rightID, leftID
	}
	if _, err := s.accounts.GetForUpdate(ctx, tx, leftID); err != nil {
		return lockErr(err)
	}
	if _, err := s.accounts.GetForUpdate(ctx, tx, rightID); err != nil {
		return lockErr(err)
	}
	return nil
}

func lockErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	return err
}
