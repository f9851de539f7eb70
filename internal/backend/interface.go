package backend

import (
	"context"

	"stash/internal/services"
)

// CleanupFunc releases resources owned by a backend.
type CleanupFunc func() error

// Result bundles the collaborators a backend provides. Store and Events
// are nil for backends that do not support them; the ledger service
// handles the absence.
type Result struct {
	Store   services.Store
	Events  services.EventPublisher
	Cleanup CleanupFunc
}

// Factory creates ledger backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Type represents the kind of backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
