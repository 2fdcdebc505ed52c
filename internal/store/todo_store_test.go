package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"
)

func TestTodoStoreListForDay(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	store := NewTodoStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "OR is_completed = FALSE") {
				t.Fatalf("pending todos must always be included: %s", query)
			}
			if len(args) != 2 || args[0] != from || args[1] != to {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]Todo) = []Todo{{ID: "todo-1", Title: "write report"}}
			return nil
		},
	})
	rows, err := store.ListForDay(ctx, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "write report" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestTodoStoreCreate(t *testing.T) {
	store := NewTodoStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO todos") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 3 || args[0] != "todo-1" || args[1] != "stretch" || args[2] != true {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	})
	if err := store.Create(context.Background(), "todo-1", "stretch", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTodoStoreRollover(t *testing.T) {
	now := time.Now()
	store := NewTodoStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "SET created_at = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != now || args[1] != "todo-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	})
	if err := store.Rollover(context.Background(), "todo-1", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
