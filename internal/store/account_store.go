package store

import (
	"context"
	"time"
)

type AccountStore struct {
	db DB
}

type Account struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Icon      string    `db:"icon"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
}

// AccountBalanceSummary pairs the stored running balance with a balance
// recomputed from entry and transfer history, for drift detection.
type AccountBalanceSummary struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	StoredBalance int64  `db:"stored_balance"`
	HistoryTotal  int64  `db:"history_total"`
	Difference    int64  `db:"difference"`
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) ListAll(ctx context.Context) ([]Account, error) {
	var rows []Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, icon, balance, created_at
		FROM accounts
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) GetByID(ctx context.Context, accountID string) (Account, error) {
	var row Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, icon, balance, created_at
		FROM accounts
		WHERE id = $1
	`, accountID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

func (s *AccountStore) GetForUpdate(ctx context.Context, tx Getter, accountID string) (Account, error) {
	var row Account
	err := tx.GetContext(ctx, &row, `
		SELECT id, name, icon, balance, created_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, accountID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

func (s *AccountStore) Create(ctx context.Context, id, name, icon string, balance int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, icon, balance)
		VALUES ($1, $2, $3, $4)
	`, id, name, icon, balance)
	return err
}

func (s *AccountStore) AdjustBalance(ctx context.Context, tx Execer, accountID string, delta int64) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = balance + $1
		WHERE id = $2
	`, delta, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListBalanceSummaries recomputes each account's balance from its entry and
// transfer history and reports the difference against the stored total.
func (s *AccountStore) ListBalanceSummaries(ctx context.Context) ([]AccountBalanceSummary, error) {
	var rows []AccountBalanceSummary
	err := s.db.SelectContext(ctx, &rows, `
		SELECT a.id,
		       a.name,
		       a.balance AS stored_balance,
		       COALESCE(e.total, 0) + COALESCE(t.total, 0) AS history_total,
		       a.balance - (COALESCE(e.total, 0) + COALESCE(t.total, 0)) AS difference
		FROM accounts a
		LEFT JOIN (
			SELECT account_id,
			       SUM(CASE WHEN kind = 'income' THEN amount ELSE -amount END) AS total
			FROM entries
			GROUP BY account_id
		) e ON e.account_id = a.id
		LEFT JOIN (
			SELECT account_id, SUM(delta) AS total
			FROM (
				SELECT from_account_id AS account_id, -SUM(amount) AS delta
				FROM transfers GROUP BY from_account_id
				UNION ALL
				SELECT to_account_id AS account_id, SUM(amount) AS delta
				FROM transfers GROUP BY to_account_id
			) sides
			GROUP BY account_id
		) t ON t.account_id = a.id
		ORDER BY a.name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
