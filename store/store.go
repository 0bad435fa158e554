// Package store persists the final ledger to SQLite. The schema mirrors the
// ledger's serialized field set; the transaction ID is the primary key, so
// re-saving the same ledger is idempotent.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"stmtledger"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	transaction_id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	description TEXT NOT NULL,
	amount TEXT NOT NULL,
	balance TEXT,
	category TEXT NOT NULL,
	month TEXT NOT NULL,
	weekday TEXT NOT NULL,
	source_file TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_month ON transactions(month);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
`

// Store is a SQLite-backed ledger sink.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveLedger upserts all ledger entries in one transaction.
func (s *Store) SaveLedger(ctx context.Context, ledger []*stmtledger.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO transactions
		(transaction_id, date, description, amount, balance, category, month, weekday, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range ledger {
		var balance sql.NullString
		if t.Balance.Valid {
			balance = sql.NullString{String: t.Balance.Decimal.StringFixed(2), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID,
			t.Date.Format(time.DateOnly),
			t.Description,
			t.Amount.StringFixed(2),
			balance,
			t.Category,
			t.Month,
			t.Weekday,
			t.SourceFile,
		); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Count returns the number of stored ledger entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
