package store

import (
	"context"
	"time"
)

type TransferStore struct {
	db DB
}

type Transfer struct {
	ID            string    `db:"id"`
	Amount        int64     `db:"amount"`
	FromAccountID string    `db:"from_account_id"`
	ToAccountID   string    `db:"to_account_id"`
	CreatedAt     time.Time `db:"created_at"`
}

type TransferWithNames struct {
	Transfer
	FromAccountName *string `db:"from_account_name"`
	ToAccountName   *string `db:"to_account_name"`
}

func NewTransferStore(db DB) *TransferStore {
	return &TransferStore{db: db}
}

func (s *TransferStore) ListBetween(ctx context.Context, from, to time.Time) ([]TransferWithNames, error) {
	var rows []TransferWithNames
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.amount, t.from_account_id, t.to_account_id, t.created_at,
		       fa.name AS from_account_name,
		       ta.name AS to_account_name
		FROM transfers t
		LEFT JOIN accounts fa ON fa.id = t.from_account_id
		LEFT JOIN accounts ta ON ta.id = t.to_account_id
		WHERE t.created_at >= $1 AND t.created_at < $2
		ORDER BY t.created_at DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransferStore) ListByAccount(ctx context.Context, accountID string) ([]TransferWithNames, error) {
	var rows []TransferWithNames
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.amount, t.from_account_id, t.to_account_id, t.created_at,
		       fa.name AS from_account_name,
		       ta.name AS to_account_name
		FROM transfers t
		LEFT JOIN accounts fa ON fa.id = t.from_account_id
		LEFT JOIN accounts ta ON ta.id = t.to_account_id
		WHERE t.from_account_id = $1 OR t.to_account_id = $1
		ORDER BY t.created_at DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransferStore) GetByID(ctx context.Context, id string) (Transfer, error) {
	var row Transfer
	err := s.db.GetContext(ctx, &row, `
		SELECT id, amount, from_account_id, to_account_id, created_at
		FROM transfers
		WHERE id = $1
	`, id)
	if err != nil {
		return Transfer{}, err
	}
	return row, nil
}

func (s *TransferStore) Insert(ctx context.Context, tx Execer, id string, amount int64, fromAccountID, toAccountID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transfers (id, amount, from_account_id, to_account_id)
		VALUES ($1, $2, $3, $4)
	`, id, amount, fromAccountID, toAccountID)
	return err
}

func (s *TransferStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM transfers WHERE id = $1`, id)
	return err
}
