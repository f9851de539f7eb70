package backend

import (
	"context"
	"testing"

	"stash/internal/config"
)

func TestTypeIsValid(t *testing.T) {
	if !SQLiteBackend.IsValid() || !MemoryBackend.IsValid() {
		t.Fatalf("built-in backend types must be valid")
	}
	if Type("postgres").IsValid() || Type("").IsValid() {
		t.Fatalf("unknown backend types must be invalid")
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "/tmp/test.db",
		AMQPURL:      "amqp://localhost",
		AMQPExchange: "stash",
		AMQPQueue:    "ledger_events",
	})
	if err != nil {
		t.Fatalf("from app config: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "/tmp/test.db" {
		t.Fatalf("unexpected backend config: %+v", cfg)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown backend type")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)
	result, err := factory.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("create memory backend: %v", err)
	}
	if result.Store != nil || result.Events != nil {
		t.Fatalf("memory backend must not provide collaborators: %+v", result)
	}
}

func TestCreateUnknownBackend(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown backend type")
	}
}
