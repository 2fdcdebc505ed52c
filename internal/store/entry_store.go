package store

import (
	"context"
	"time"
)

// Entry kinds. One table holds both directions with a discriminant.
const (
	EntryExpense = "expense"
	EntryIncome  = "income"
)

type EntryStore struct {
	db DB
}

type Entry struct {
	ID          string    `db:"id"`
	Amount      int64     `db:"amount"`
	Kind        string    `db:"kind"`
	AccountID   string    `db:"account_id"`
	CategoryID  string    `db:"category_id"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// EntryWithNames joins category and account display names. Dangling
// references come back empty and render as "unknown" downstream.
type EntryWithNames struct {
	Entry
	CategoryName  *string `db:"category_name"`
	CategoryEmoji *string `db:"category_emoji"`
	AccountName   *string `db:"account_name"`
}

type EntryInput struct {
	ID          string
	Amount      int64
	Kind        string
	AccountID   string
	CategoryID  string
	Description string
}

func NewEntryStore(db DB) *EntryStore {
	return &EntryStore{db: db}
}

func (s *EntryStore) ListBetween(ctx context.Context, from, to time.Time) ([]EntryWithNames, error) {
	var rows []EntryWithNames
	err := s.db.SelectContext(ctx, &rows, `
		SELECT e.id, e.amount, e.kind, e.account_id, e.category_id, e.description, e.created_at,
		       c.name AS category_name, c.emoji AS category_emoji,
		       a.name AS account_name
		FROM entries e
		LEFT JOIN categories c ON c.id = e.category_id
		LEFT JOIN accounts a ON a.id = e.account_id
		WHERE e.created_at >= $1 AND e.created_at < $2
		ORDER BY e.created_at DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EntryStore) ListByAccount(ctx context.Context, accountID string) ([]EntryWithNames, error) {
	var rows []EntryWithNames
	err := s.db.SelectContext(ctx, &rows, `
		SELECT e.id, e.amount, e.kind, e.account_id, e.category_id, e.description, e.created_at,
		       c.name AS category_name, c.emoji AS category_emoji,
		       a.name AS account_name
		FROM entries e
		LEFT JOIN categories c ON c.id = e.category_id
		LEFT JOIN accounts a ON a.id = e.account_id
		WHERE e.account_id = $1
		ORDER BY e.created_at DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EntryStore) GetByID(ctx context.Context, id string) (Entry, error) {
	var row Entry
	err := s.db.GetContext(ctx, &row, `
		SELECT id, amount, kind, account_id, category_id, description, created_at
		FROM entries
		WHERE id = $1
	`, id)
	if err != nil {
		return Entry{}, err
	}
	return row, nil
}

func (s *EntryStore) Insert(ctx context.Context, tx Execer, input EntryInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO entries (id, amount, kind, account_id, category_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, input.ID, input.Amount, input.Kind, input.AccountID, input.CategoryID, input.Description)
	return err
}

func (s *EntryStore) UpdateDescription(ctx context.Context, id, description string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE entries SET description = $1 WHERE id = $2
	`, description, id)
	return err
}

func (s *EntryStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	return err
}
