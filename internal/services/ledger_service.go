// Package services wires the ledger engine to its collaborators:
// optional persistence and an optional event bus. The engine commits in
// memory first; storage and publish failures are logged and never roll
// back or partially apply a mutation.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"stash/internal/amqp"
	"stash/internal/core"
	"stash/internal/ledger"
)

// LedgerService orchestrates ledger operations across the engine,
// SQLite, and AMQP. Both store and events may be nil; the service then
// runs as a pure in-memory ledger.
type LedgerService struct {
	engine             *ledger.Engine
	store              Store
	events             EventPublisher
	defaultBudgetCents int64
}

func NewLedgerService(engine *ledger.Engine, store Store, events EventPublisher, defaultBudgetCents int64) *LedgerService {
	return &LedgerService{
		engine:             engine,
		store:              store,
		events:             events,
		defaultBudgetCents: defaultBudgetCents,
	}
}

// Load restores engine state from the store. Called once at startup;
// a missing budget row falls back to the engine's configured default.
func (s *LedgerService) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	txs, budgetCents, found, err := s.store.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load ledger state: %w", err)
	}
	if !found {
		budgetCents = -1
	}
	s.engine.Restore(txs, budgetCents)
	slog.InfoContext(ctx, "Ledger state restored",
		"transactions", len(txs),
		"budget_cents", budgetCents,
		"budget_found", found)
	return nil
}

// AddTransaction validates and appends a transaction, persists it, and
// publishes a creation event. The returned snapshot reflects the
// committed state.
func (s *LedgerService) AddTransaction(ctx context.Context, typ core.TransactionType, amountCents int64, category, description string) (core.Snapshot, error) {
	snap, tx, err := s.engine.AddTransaction(typ, amountCents, category, description)
	if err != nil {
		return core.Snapshot{}, err
	}

	if s.store != nil {
		if err := s.store.AppendTransaction(ctx, tx); err != nil {
			// In-memory commit already happened; surface the problem
			// without failing the request.
			slog.ErrorContext(ctx, "Failed to persist transaction",
				"id", tx.ID, "error", err)
		}
	}

	s.publish(ctx, amqp.NewTransactionCreated(tx.ID))
	return snap, nil
}

// SetBudget replaces the budget ceiling and persists it.
func (s *LedgerService) SetBudget(ctx context.Context, cents int64) (core.Snapshot, error) {
	snap, err := s.engine.SetBudget(cents)
	if err != nil {
		return core.Snapshot{}, err
	}

	if s.store != nil {
		if err := s.store.SaveBudget(ctx, cents); err != nil {
			slog.ErrorContext(ctx, "Failed to persist budget",
				"budget_cents", cents, "error", err)
		}
	}

	s.publish(ctx, amqp.NewBudgetSet(cents))
	return snap, nil
}

// Reset clears all ledger state, in memory and in the store.
func (s *LedgerService) Reset(ctx context.Context) core.Snapshot {
	snap := s.engine.Reset()

	if s.store != nil {
		if err := s.store.ResetAll(ctx, s.defaultBudgetCents); err != nil {
			slog.ErrorContext(ctx, "Failed to reset ledger storage", "error", err)
		}
	}

	s.publish(ctx, amqp.NewLedgerReset())
	return snap
}

// Snapshot returns the current derived state without side effects.
func (s *LedgerService) Snapshot() core.Snapshot {
	return s.engine.Snapshot()
}

func (s *LedgerService) publish(ctx context.Context, msg *amqp.LedgerEventMessage) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, msg); err != nil {
		// Events only feed the export worker; the periodic pending sweep
		// catches anything lost here.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", msg.Kind, "id", msg.ID, "error", err)
	}
}

// Close closes any collaborator that holds resources.
func (s *LedgerService) Close() error {
	var errs []error

	if c, ok := s.store.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if c, ok := s.events.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
