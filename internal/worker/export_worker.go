// Package worker moves committed transactions from SQLite to a durable
// export target, driven by AMQP events with a periodic sweep as backup.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stash/internal/amqp"
	"stash/internal/core"
	"stash/internal/export"
	"stash/internal/storage"
)

// Storage is the slice of the repository the worker needs.
type Storage interface {
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	PendingExports(ctx context.Context, limit int) ([]storage.PendingExport, error)
	MarkExported(ctx context.Context, id int64) error
	MarkExportError(ctx context.Context, id int64) error
}

// ExportWorker consumes ledger events and appends the referenced
// transactions to the export target.
type ExportWorker struct {
	storage   Storage
	target    export.TransactionAppender
	batchSize int
}

func NewExportWorker(storage Storage, target export.TransactionAppender, batchSize int) *ExportWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	return &ExportWorker{
		storage:   storage,
		target:    target,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single ledger event from AMQP. Only
// transaction creations carry work; budget and reset events are
// acknowledged as-is since the export file is append-only history.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	switch msg.Kind {
	case amqp.EventTransactionCreated:
		return w.exportByID(ctx, msg.ID)
	case amqp.EventBudgetSet, amqp.EventLedgerReset:
		slog.InfoContext(ctx, "Ignoring non-transaction ledger event", "kind", msg.Kind)
		return nil
	default:
		return fmt.Errorf("unknown ledger event kind: %q", msg.Kind)
	}
}

// ProcessPending exports transactions that have not been exported yet.
// This is the backup mechanism for lost AMQP messages.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.PendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending exports: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, p := range pending {
		if err := w.exportByID(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction", "id", p.ID, "error", err)
		}
	}

	return nil
}

// StartupCheck exports any backlog at worker startup, with a larger
// batch than the periodic sweep.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.storage.PendingExports(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending exports for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, p := range pending {
		if err := w.exportByID(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup export check completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)

	return nil
}

func (w *ExportWorker) exportByID(ctx context.Context, id int64) error {
	tx, err := w.storage.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The ledger was reset between the event and this delivery.
			slog.WarnContext(ctx, "Transaction no longer exists, skipping export", "id", id)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.target.Append(ctx, tx)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to export target: %w", err)
	}

	if err := w.storage.MarkExported(ctx, id); err != nil {
		// The export itself worked; only the bookkeeping failed.
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Transaction exported",
		"id", id,
		"export_ref", ref,
		"amount_cents", tx.Amount.Cents)

	return nil
}
