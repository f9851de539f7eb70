package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "PET_NAME", "DEFAULT_BUDGET", "CATEGORY_FILE",
		"SQLITE_DB_PATH", "AMQP_URL", "AMQP_EXCHANGE", "AMQP_QUEUE",
		"EXPORT_TARGET", "EXPORT_FILE_PATH", "EXPORT_BATCH_SIZE", "EXPORT_INTERVAL",
		"GOOGLE_SPREADSHEET_ID", "GOOGLE_SHEET_NAME", "DATA_BACKEND",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Port != "8081" {
		t.Fatalf("expected default port 8081, got %s", cfg.Port)
	}
	if cfg.PetName != "Sweety" {
		t.Fatalf("expected default pet name Sweety, got %s", cfg.PetName)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("expected default backend memory, got %s", cfg.DataBackend)
	}
	if cfg.ExportTarget != "file" {
		t.Fatalf("expected default export target file, got %s", cfg.ExportTarget)
	}
	if cfg.ExportBatch != 10 {
		t.Fatalf("expected default batch 10, got %d", cfg.ExportBatch)
	}
	if cfg.ExportInterval != 30*time.Second {
		t.Fatalf("expected default interval 30s, got %v", cfg.ExportInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("PET_NAME", "Biscuit")
	t.Setenv("DEFAULT_BUDGET", "150.00")
	t.Setenv("EXPORT_INTERVAL", "2m")
	t.Setenv("EXPORT_BATCH_SIZE", "25")

	cfg := Load()
	if cfg.Port != "9000" || cfg.PetName != "Biscuit" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.ExportInterval != 2*time.Minute || cfg.ExportBatch != 25 {
		t.Fatalf("export settings not applied: %+v", cfg)
	}

	cents, err := cfg.DefaultBudgetCents()
	if err != nil || cents != 15000 {
		t.Fatalf("expected 15000 cents, got %d (err=%v)", cents, err)
	}
}

func TestDefaultBudgetCentsZero(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cents, err := cfg.DefaultBudgetCents()
	if err != nil || cents != 0 {
		t.Fatalf("default budget should be 0, got %d (err=%v)", cents, err)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"bad port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"negative budget", func(c *Config) { c.DefaultBudget = "-5" }, "invalid default budget"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"amqp missing queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "queue"},
		{"bad export target", func(c *Config) { c.ExportTarget = "s3" }, "invalid export target"},
		{"sheets without id", func(c *Config) { c.ExportTarget = "sheets"; c.GoogleSpreadsheetID = "" }, "Spreadsheet ID"},
		{"empty export path", func(c *Config) { c.ExportFilePath = "" }, "export file path"},
		{"batch too small", func(c *Config) { c.ExportBatch = 0 }, "batch size"},
		{"batch too large", func(c *Config) { c.ExportBatch = 5000 }, "batch size"},
		{"interval too short", func(c *Config) { c.ExportInterval = 10 * time.Millisecond }, "export interval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			cfg := Load()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q in error, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Port = "abc"
	cfg.DataBackend = "postgres"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "invalid data backend") {
		t.Fatalf("expected both failures reported, got %v", err)
	}
}
