package store

import (
	"context"
	"time"
)

// NoteStore is an append-only scratchpad. Notes are never updated or deleted.
type NoteStore struct {
	db DB
}

type Note struct {
	ID        string    `db:"id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func NewNoteStore(db DB) *NoteStore {
	return &NoteStore{db: db}
}

func (s *NoteStore) Insert(ctx context.Context, id, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, content)
		VALUES ($1, $2)
	`, id, content)
	return err
}

func (s *NoteStore) ListRecent(ctx context.Context, limit int) ([]Note, error) {
	var rows []Note
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, content, created_at
		FROM notes
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
