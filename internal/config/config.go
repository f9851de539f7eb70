package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stash/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Ledger defaults
	PetName       string
	DefaultBudget string // decimal string, parsed via DefaultBudgetCents
	CategoryFile  string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Export worker
	ExportTarget   string // "file" or "sheets"
	ExportFilePath string
	ExportBatch    int
	ExportInterval time.Duration

	// Google Sheets export target
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Backend selection
	DataBackend string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		PetName:       getEnv("PET_NAME", "Sweety"),
		DefaultBudget: getEnv("DEFAULT_BUDGET", "0"),
		CategoryFile:  getEnv("CATEGORY_FILE", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/stash.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "stash"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		ExportTarget:   getEnv("EXPORT_TARGET", "file"),
		ExportFilePath: getEnv("EXPORT_FILE_PATH", "./data/stash_export.jsonl"),
		ExportBatch:    getEnvInt("EXPORT_BATCH_SIZE", 10),
		ExportInterval: getEnvDuration("EXPORT_INTERVAL", 30*time.Second),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}

	return cfg
}

// DefaultBudgetCents parses the configured default budget into cents.
// "0" (the default) means no budget is set until the user picks one.
func (c *Config) DefaultBudgetCents() (int64, error) {
	s := strings.TrimSpace(c.DefaultBudget)
	if s == "" || s == "0" {
		return 0, nil
	}
	return core.ParseDecimalToCents(s)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := c.DefaultBudgetCents(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid default budget '%s': must be a non-negative decimal", c.DefaultBudget))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.ExportTarget {
	case "file":
		if c.ExportFilePath == "" {
			errs = append(errs, "export file path cannot be empty when using file export target")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "Google Spreadsheet ID is required when using sheets export target")
		}
		if c.GoogleSheetName == "" {
			errs = append(errs, "Google Sheet name is required when using sheets export target")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid export target '%s': must be 'file' or 'sheets'", c.ExportTarget))
	}

	if c.ExportBatch < 1 {
		errs = append(errs, fmt.Sprintf("invalid export batch size %d: must be at least 1", c.ExportBatch))
	} else if c.ExportBatch > 1000 {
		errs = append(errs, fmt.Sprintf("invalid export batch size %d: must be at most 1000", c.ExportBatch))
	}

	if c.ExportInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid export interval %v: must be at least 1 second", c.ExportInterval))
	} else if c.ExportInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid export interval %v: must be at most 24 hours", c.ExportInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
