package core

import (
	"errors"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is a single immutable ledger entry. Amount is always
	// positive; the sign is implied by Type.
	Transaction struct {
		ID          int64           `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrNegativeBudget = errors.New("budget cannot be negative")
)

// IsValid reports whether t is one of the two allowed transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (tx Transaction) Validate() error {
	if !tx.Type.IsValid() {
		return ErrInvalidType
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if len(tx.Category) > 100 {
		return errors.New("category too long (max 100 characters)")
	}
	return nil
}

// Signed returns the amount in cents with the sign implied by the type.
func (tx Transaction) Signed() int64 {
	if tx.Type == Expense {
		return -tx.Amount.Cents
	}
	return tx.Amount.Cents
}
