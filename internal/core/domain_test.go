package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTransactionTypeIsValid(t *testing.T) {
	if !Income.IsValid() || !Expense.IsValid() {
		t.Fatalf("income and expense must be valid types")
	}
	for _, typ := range []TransactionType{"", "transfer", "INCOME", "Expense"} {
		if typ.IsValid() {
			t.Fatalf("%q should not be a valid type", typ)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if err := (Money{Cents: -100}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          1,
		Type:        Expense,
		Amount:      Money{Cents: 4000},
		Category:    "Food",
		Description: "groceries",
		Date:        time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"bad type", Transaction{Type: "transfer", Amount: Money{Cents: 100}}, ErrInvalidType},
		{"zero amount", Transaction{Type: Income, Amount: Money{Cents: 0}}, ErrInvalidAmount},
		{"negative amount", Transaction{Type: Expense, Amount: Money{Cents: -50}}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	long := good
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatalf("expected error for oversized description")
	}
	long = good
	long.Category = strings.Repeat("x", 101)
	if err := long.Validate(); err == nil {
		t.Fatalf("expected error for oversized category")
	}
}

func TestTransactionSigned(t *testing.T) {
	in := Transaction{Type: Income, Amount: Money{Cents: 4000}}
	if got := in.Signed(); got != 4000 {
		t.Fatalf("income expected +4000, got %d", got)
	}
	out := Transaction{Type: Expense, Amount: Money{Cents: 4000}}
	if got := out.Signed(); got != -4000 {
		t.Fatalf("expense expected -4000, got %d", got)
	}
}
