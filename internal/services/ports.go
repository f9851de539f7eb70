package services

import (
	"context"

	"stash/internal/amqp"
	"stash/internal/core"
)

// Ports for outbound collaborators of the ledger service.
type (
	// Store persists committed ledger mutations. Implementations must
	// never be consulted mid-request; the engine's in-memory state is
	// authoritative.
	Store interface {
		LoadState(ctx context.Context) (txs []core.Transaction, budgetCents int64, found bool, err error)
		AppendTransaction(ctx context.Context, tx core.Transaction) error
		SaveBudget(ctx context.Context, cents int64) error
		ResetAll(ctx context.Context, defaultBudgetCents int64) error
	}

	// EventPublisher notifies downstream consumers (the export worker)
	// about committed mutations.
	EventPublisher interface {
		PublishEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
	}
)
