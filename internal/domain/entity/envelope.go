// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Envelope represents a budget envelope, the target bucket a transaction is
// classified into. MonthlyBudget is the allocation used for utilization
// figures. CategoryID links the envelope to the category new patterns are
// synthesized against; suggestion building still matches envelopes to
// categories by name (see the classifier).
type Envelope struct {
	ID            uuid.UUID
	Name          string
	MonthlyBudget decimal.Decimal
	CategoryID    *uuid.UUID
	OwnerID       uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEnvelope creates a new Envelope entity.
func NewEnvelope(name string, monthlyBudget decimal.Decimal, categoryID *uuid.UUID, ownerID uuid.UUID) *Envelope {
	now := time.Now().UTC()
	return &Envelope{
		ID:            uuid.New(),
		Name:          name,
		MonthlyBudget: monthlyBudget,
		CategoryID:    categoryID,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BudgetUtilization returns spent/MonthlyBudget. A zero budget reports zero
// utilization rather than an unbounded figure.
func (e *Envelope) BudgetUtilization(spent decimal.Decimal) float64 {
	if e.MonthlyBudget.IsZero() {
		return 0
	}
	utilization, _ := spent.Div(e.MonthlyBudget).Float64()
	return utilization
}
