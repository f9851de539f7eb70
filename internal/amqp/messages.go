package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event kinds carried on the ledger event queue.
const (
	EventTransactionCreated = "transaction_created"
	EventBudgetSet          = "budget_set"
	EventLedgerReset        = "ledger_reset"
)

// LedgerEventMessage is a lightweight notification about a committed
// ledger mutation. It carries only identifiers; consumers fetch the full
// transaction from storage.
type LedgerEventMessage struct {
	Kind        string    `json:"kind"`
	ID          int64     `json:"id,omitempty"`
	BudgetCents int64     `json:"budget_cents,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewTransactionCreated(id int64) *LedgerEventMessage {
	return &LedgerEventMessage{Kind: EventTransactionCreated, ID: id, Timestamp: time.Now()}
}

func NewBudgetSet(cents int64) *LedgerEventMessage {
	return &LedgerEventMessage{Kind: EventBudgetSet, BudgetCents: cents, Timestamp: time.Now()}
}

func NewLedgerReset() *LedgerEventMessage {
	return &LedgerEventMessage{Kind: EventLedgerReset, Timestamp: time.Now()}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Kind {
	case EventTransactionCreated, EventBudgetSet, EventLedgerReset:
	default:
		return nil, fmt.Errorf("unknown ledger event kind: %q", msg.Kind)
	}
	return &msg, nil
}
