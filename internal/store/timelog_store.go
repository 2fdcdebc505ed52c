package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNoOpenLog is returned when no time log is currently open.
var ErrNoOpenLog = errors.New("no open time log")

type TimeLogStore struct {
	db DB
}

type TimeLog struct {
	ID         string     `db:"id"`
	CategoryID string     `db:"category_id"`
	StartTime  time.Time  `db:"start_time"`
	EndTime    *time.Time `db:"end_time"`
}

func NewTimeLogStore(db DB) *TimeLogStore {
	return &TimeLogStore{db: db}
}

// ListStartedBetween returns logs whose start_time falls in [from, to).
// A log spanning midnight belongs entirely to its start day.
func (s *TimeLogStore) ListStartedBetween(ctx context.Context, from, to time.Time) ([]TimeLog, error) {
	var rows []TimeLog
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, category_id, start_time, end_time
		FROM time_logs
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`, from, to)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOpen returns the single log with a null end_time, or ErrNoOpenLog.
func (s *TimeLogStore) GetOpen(ctx context.Context) (TimeLog, error) {
	var row TimeLog
	err := s.db.GetContext(ctx, &row, `
		SELECT id, category_id, start_time, end_time
		FROM time_logs
		WHERE end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return TimeLog{}, ErrNoOpenLog
	}
	if err != nil {
		return TimeLog{}, err
	}
	return row, nil
}

func (s *TimeLogStore) Insert(ctx context.Context, id, categoryID string, start time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_logs (id, category_id, start_time)
		VALUES ($1, $2, $3)
	`, id, categoryID, start)
	return err
}

// InsertClosed records a session that already ended, such as a finished
// focus interval logged in one shot. Never touches the open-session slot.
func (s *TimeLogStore) InsertClosed(ctx context.Context, id, categoryID string, start, end time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_logs (id, category_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
	`, id, categoryID, start, end)
	return err
}

func (s *TimeLogStore) Close(ctx context.Context, id string, end time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE time_logs
		SET end_time = $1
		WHERE id = $2 AND end_time IS NULL
	`, end, id)
	return err
}

func (s *TimeLogStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM time_logs WHERE id = $1`, id)
	return err
}
