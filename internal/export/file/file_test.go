package file

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stash/internal/core"
)

func TestNewCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "export.jsonl")
	if _, err := New(path); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

func TestNewRejectsEmptyPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestAppendWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.jsonl")
	a, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	txs := []core.Transaction{
		{ID: 1, Type: core.Expense, Amount: core.Money{Cents: 4000}, Category: "Food", Date: time.Now().UTC()},
		{ID: 2, Type: core.Income, Amount: core.Money{Cents: 100000}, Category: "Salary", Date: time.Now().UTC()},
	}
	for _, tx := range txs {
		ref, err := a.Append(context.Background(), tx)
		if err != nil {
			t.Fatalf("append %d: %v", tx.ID, err)
		}
		if want := "file:" + map[int64]string{1: "1", 2: "2"}[tx.ID]; ref != want {
			t.Fatalf("expected ref %q, got %q", want, ref)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var got core.Transaction
		if err := json.Unmarshal(sc.Bytes(), &got); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if got.ID != txs[lines].ID || got.Amount.Cents != txs[lines].Amount.Cents {
			t.Fatalf("line %d mismatch: %+v", lines+1, got)
		}
		lines++
	}
	if lines != len(txs) {
		t.Fatalf("expected %d lines, got %d", len(txs), lines)
	}
}
