// Package storage persists committed ledger state to SQLite. It is a
// collaborator of the in-memory engine, never the source of truth during
// a request: the engine commits first, storage records what happened.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stash/internal/core"

	_ "modernc.org/sqlite"
)

const budgetKey = "budget_cents"

// ErrNotFound is returned when a transaction id has no row.
var ErrNotFound = errors.New("transaction not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadState reads the full transaction history in insertion order plus
// the stored budget. found is false when no budget row exists yet, so
// the caller can fall back to the configured default.
func (r *SQLiteRepository) LoadState(ctx context.Context) (txs []core.Transaction, budgetCents int64, found bool, err error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount_cents, category, description, created_at
		   FROM transactions ORDER BY id`)
	if err != nil {
		return nil, 0, false, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx core.Transaction
		var typ, createdAt string
		if err := rows.Scan(&tx.ID, &typ, &tx.Amount.Cents, &tx.Category, &tx.Description, &createdAt); err != nil {
			return nil, 0, false, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TransactionType(typ)
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			tx.Date = t
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, false, fmt.Errorf("iterate transactions: %w", err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, budgetKey).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return txs, 0, false, nil
	case err != nil:
		return nil, 0, false, fmt.Errorf("query budget: %w", err)
	}
	if _, serr := fmt.Sscanf(value, "%d", &budgetCents); serr != nil {
		return nil, 0, false, fmt.Errorf("parse stored budget %q: %w", value, serr)
	}

	return txs, budgetCents, true, nil
}

// AppendTransaction records a committed transaction with export status pending.
func (r *SQLiteRepository) AppendTransaction(ctx context.Context, tx core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, amount_cents, category, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.Amount.Cents, tx.Category, tx.Description,
		tx.Date.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return nil
}

// SaveBudget upserts the budget ceiling.
func (r *SQLiteRepository) SaveBudget(ctx context.Context, cents int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		budgetKey, fmt.Sprintf("%d", cents))
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved to SQLite", "budget_cents", cents)
	return nil
}

// ResetAll clears the history and restores the default budget in one
// database transaction.
func (r *SQLiteRepository) ResetAll(ctx context.Context, defaultBudgetCents int64) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := dbTx.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		budgetKey, fmt.Sprintf("%d", defaultBudgetCents)); err != nil {
		return fmt.Errorf("reset budget: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}

	slog.InfoContext(ctx, "Ledger storage reset", "default_budget_cents", defaultBudgetCents)
	return nil
}

// GetTransaction retrieves a single transaction by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var tx core.Transaction
	var typ, createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, type, amount_cents, category, description, created_at
		   FROM transactions WHERE id = ?`, id).
		Scan(&tx.ID, &typ, &tx.Amount.Cents, &tx.Category, &tx.Description, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return core.Transaction{}, ErrNotFound
	case err != nil:
		return core.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}
	tx.Type = core.TransactionType(typ)
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		tx.Date = t
	}
	return tx, nil
}

// PendingExport is the minimal row the export worker needs to retry.
type PendingExport struct {
	ID        int64
	CreatedAt time.Time
}

// PendingExports lists transactions not yet exported, oldest first.
func (r *SQLiteRepository) PendingExports(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at FROM transactions
		  WHERE export_status = 'pending' ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending exports: %w", err)
	}
	defer rows.Close()

	var out []PendingExport
	for rows.Next() {
		var p PendingExport
		var createdAt string
		if err := rows.Scan(&p.ID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			p.CreatedAt = t
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending exports: %w", err)
	}
	return out, nil
}

// MarkExported marks a transaction as successfully exported.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET export_status = 'exported', exported_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as exported", "id", id)
	return nil
}

// MarkExportError marks a transaction as having export errors.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET export_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with export error", "id", id)
	return nil
}
