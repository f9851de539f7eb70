// Package file appends exported transactions to a JSON lines file on
// local disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"stash/internal/core"
)

type Appender struct {
	mu   sync.Mutex
	path string
}

func New(path string) (*Appender, error) {
	if path == "" {
		return nil, fmt.Errorf("export file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}
	return &Appender{path: path}, nil
}

// Append writes the transaction as one JSON line. The file is opened
// per call so external rotation or truncation never wedges the worker.
func (a *Appender) Append(_ context.Context, tx core.Transaction) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	line, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("marshal transaction: %w", err)
	}

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return "", fmt.Errorf("write export line: %w", err)
	}

	return fmt.Sprintf("file:%d", tx.ID), nil
}
