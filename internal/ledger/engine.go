// Package ledger implements the in-memory ledger engine: the single
// owner of transaction history and budget, with all derived values
// (balance, spend, pet state) recomputed on every read.
package ledger

import (
	"sync"
	"time"

	"stash/internal/core"
)

const DefaultPetName = "Sweety"

// Engine owns the ledger state. Mutations run under an exclusive lock
// and are atomic: a failed validation changes nothing. Engines are
// independent values, so tests (or future multi-user callers) can hold
// several without shared state.
type Engine struct {
	mu sync.RWMutex

	txs         []core.Transaction
	budgetCents int64
	nextID      int64

	defaultBudgetCents int64
	petName            string
	now                func() time.Time
}

type Option func(*Engine)

// WithPetName sets the pet name used in snapshot messages.
func WithPetName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.petName = name
		}
	}
}

// WithDefaultBudget sets the budget cents applied at creation and after Reset.
func WithDefaultBudget(cents int64) Option {
	return func(e *Engine) {
		if cents >= 0 {
			e.defaultBudgetCents = cents
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		petName: DefaultPetName,
		now:     time.Now,
		nextID:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.budgetCents = e.defaultBudgetCents
	return e
}

// AddTransaction validates and appends a new transaction, returning the
// recomputed snapshot and the stored transaction. On validation failure
// nothing changes.
func (e *Engine) AddTransaction(typ core.TransactionType, amountCents int64, category, description string) (core.Snapshot, core.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx := core.Transaction{
		ID:          e.nextID,
		Type:        typ,
		Amount:      core.Money{Cents: amountCents},
		Category:    category,
		Description: description,
		Date:        e.now().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return core.Snapshot{}, core.Transaction{}, err
	}

	e.txs = append(e.txs, tx)
	e.nextID++
	return e.snapshotLocked(), tx, nil
}

// SetBudget replaces the budget ceiling. History is untouched.
func (e *Engine) SetBudget(cents int64) (core.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cents < 0 {
		return core.Snapshot{}, core.ErrNegativeBudget
	}
	e.budgetCents = cents
	return e.snapshotLocked(), nil
}

// Reset clears the history and restores the default budget. There is no
// undo log; the operation is irreversible.
func (e *Engine) Reset() core.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.txs = nil
	e.budgetCents = e.defaultBudgetCents
	e.nextID = 1
	return e.snapshotLocked()
}

// Snapshot returns the current fully-derived state without side effects.
func (e *Engine) Snapshot() core.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// Restore replaces the in-memory state from a persistence collaborator.
// Intended for startup only; the id sequence continues after the highest
// restored id.
func (e *Engine) Restore(txs []core.Transaction, budgetCents int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.txs = append([]core.Transaction(nil), txs...)
	if budgetCents >= 0 {
		e.budgetCents = budgetCents
	}
	e.nextID = 1
	for _, tx := range e.txs {
		if tx.ID >= e.nextID {
			e.nextID = tx.ID + 1
		}
	}
}

// snapshotLocked builds a snapshot from the current state. Callers must
// hold at least a read lock. The transaction slice is copied so handing
// the snapshot out never aliases engine state.
func (e *Engine) snapshotLocked() core.Snapshot {
	var balance, spent int64
	for _, tx := range e.txs {
		balance += tx.Signed()
		if tx.Type == core.Expense {
			spent += tx.Amount.Cents
		}
	}

	txs := make([]core.Transaction, len(e.txs))
	copy(txs, e.txs)

	return core.Snapshot{
		Balance:      core.Money{Cents: balance},
		Budget:       core.Money{Cents: e.budgetCents},
		Spent:        core.Money{Cents: spent},
		Pet:          core.DerivePet(spent, e.budgetCents, e.petName),
		Transactions: txs,
	}
}
