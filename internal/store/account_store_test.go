package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAccountStoreAdjustBalance(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "SET balance = balance + $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != int64(-1200) || args[1] != "acc-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewAccountStore(stubDB{})
	affected, err := store.AdjustBalance(ctx, execer, "acc-1", -1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}
}

// Every column the balance update assigns must exist in the accounts DDL,
// otherwise the statement fails on Postgres with 42703 undefined_column and
// no ledger mutation can commit.
func TestAccountStoreAdjustBalanceMatchesSchema(t *testing.T) {
	var captured string
	execer := stubExecer{
		execFn: func(_ context.Context, query string, _ ...any) (sql.Result, error) {
			captured = query
			return stubResult{rows: 1}, nil
		},
	}
	store := NewAccountStore(stubDB{})
	if _, err := store.AdjustBalance(context.Background(), execer, "acc-1", 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ddl, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.sql"))
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	columns := accountColumns(t, string(ddl))

	setStart := strings.Index(captured, "SET")
	whereStart := strings.Index(captured, "WHERE")
	if setStart < 0 || whereStart < setStart {
		t.Fatalf("unexpected query shape: %s", captured)
	}
	for _, assignment := range strings.Split(captured[setStart+len("SET"):whereStart], ",") {
		column := strings.TrimSpace(strings.SplitN(assignment, "=", 2)[0])
		if _, ok := columns[column]; !ok {
			t.Fatalf("balance update sets column %q which the accounts table does not define", column)
		}
	}
}

func accountColumns(t *testing.T, ddl string) map[string]struct{} {
	t.Helper()
	start := strings.Index(ddl, "CREATE TABLE IF NOT EXISTS accounts (")
	if start < 0 {
		t.Fatal("accounts table not found in schema")
	}
	body := ddl[start:]
	body = body[strings.Index(body, "(")+1 : strings.Index(body, ");")]
	columns := make(map[string]struct{})
	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "CHECK") {
			continue
		}
		columns[fields[0]] = struct{}{}
	}
	return columns
}

func TestAccountStoreGetForUpdate(t *testing.T) {
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "acc-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*Account) = Account{ID: "acc-1", Balance: 10000}
			return nil
		},
	}
	store := NewAccountStore(stubDB{})
	row, err := store.GetForUpdate(context.Background(), getter, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Balance != 10000 {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestAccountStoreListBalanceSummaries(t *testing.T) {
	store := NewAccountStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, _ ...any) error {
			if !strings.Contains(query, "FROM entries") || !strings.Contains(query, "FROM transfers") {
				t.Fatalf("summary must recompute from both entries and transfers: %s", query)
			}
			*dest.(*[]AccountBalanceSummary) = []AccountBalanceSummary{
				{ID: "acc-1", StoredBalance: 10000, HistoryTotal: 10000, Difference: 0},
			}
			return nil
		},
	})
	rows, err := store.ListBalanceSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Difference != 0 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
