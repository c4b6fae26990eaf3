// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of financial account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
)

// Account represents a financial account whose transaction history is
// analyzed for merchant metrics, anomalies and insights.
type Account struct {
	ID          uuid.UUID
	Name        string
	Type        AccountType
	Institution string
	Balance     decimal.Decimal
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccount creates a new Account entity with a zero balance.
func NewAccount(name string, accountType AccountType, institution string, ownerID uuid.UUID) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:          uuid.New(),
		Name:        name,
		Type:        accountType,
		Institution: institution,
		Balance:     decimal.Zero,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
