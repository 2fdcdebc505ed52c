package store

import (
	"context"
	"time"
)

type TodoStore struct {
	db DB
}

type Todo struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	IsCompleted bool      `db:"is_completed"`
	IsHabit     bool      `db:"is_habit"`
	CreatedAt   time.Time `db:"created_at"`
}

func NewTodoStore(db DB) *TodoStore {
	return &TodoStore{db: db}
}

// ListForDay returns todos created within [from, to) plus every still-pending
// todo regardless of age, so the backlog remains visible on any selected day.
func (s *TodoStore) ListForDay(ctx context.Context, from, to time.Time) ([]Todo, error) {
	var rows []Todo
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, title, is_completed, is_habit, created_at
		FROM todos
		WHERE (created_at >= $1 AND created_at < $2) OR is_completed = FALSE
		ORDER BY created_at DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TodoStore) Create(ctx context.Context, id, title string, isHabit bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, title, is_completed, is_habit)
		VALUES ($1, $2, FALSE, $3)
	`, id, title, isHabit)
	return err
}

func (s *TodoStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE todos SET is_completed = $1 WHERE id = $2
	`, completed, id)
	return err
}

func (s *TodoStore) GetByID(ctx context.Context, id string) (Todo, error) {
	var row Todo
	err := s.db.GetContext(ctx, &row, `
		SELECT id, title, is_completed, is_habit, created_at
		FROM todos
		WHERE id = $1
	`, id)
	if err != nil {
		return Todo{}, err
	}
	return row, nil
}

// Rollover re-dates a stale pending todo to now, pulling it out of the
// backlog and into the current day. The original date is not retained.
func (s *TodoStore) Rollover(ctx context.Context, id string, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE todos SET created_at = $1 WHERE id = $2
	`, now, id)
	return err
}

func (s *TodoStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}
