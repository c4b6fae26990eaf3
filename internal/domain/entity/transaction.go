// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a financial transaction. Amount is always a
// positive magnitude; Type distinguishes money in from money out. The
// Description doubles as the merchant grouping key for analysis.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	EnvelopeID  *uuid.UUID // nil while uncategorized
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	accountID uuid.UUID,
	envelopeID *uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		EnvelopeID:  envelopeID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpense reports whether the transaction is money going out.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}
