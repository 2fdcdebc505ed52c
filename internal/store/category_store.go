package store

import (
	"context"
	"time"
)

// Category kinds. A category buckets either tracked time or money movement.
const (
	CategoryTime    = "time"
	CategoryExpense = "expense"
	CategoryIncome  = "income"
)

type CategoryStore struct {
	db DB
}

type Category struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Emoji     string    `db:"emoji"`
	Kind      string    `db:"kind"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
}

func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) ListAll(ctx context.Context) ([]Category, error) {
	var rows []Category
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, emoji, kind, color, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, categoryID string) (Category, error) {
	var row Category
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, emoji, kind, color, created_at
		FROM categories
		WHERE id = $1
	`, categoryID)
	if err != nil {
		return Category{}, err
	}
	return row, nil
}

func (s *CategoryStore) Create(ctx context.Context, id, name, emoji, kind, color string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, emoji, kind, color)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, emoji, kind, color)
	return err
}
