// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// InsightRepository persists generated spending insights so the UI layer
// can render them without re-running an analysis.
type InsightRepository interface {
	// ReplaceForAccount atomically replaces the stored insights for an
	// account with a freshly generated set.
	ReplaceForAccount(ctx context.Context, accountID uuid.UUID, insights []*entity.SpendingInsight) error

	// FindByAccount retrieves the stored insights for an account, newest first.
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.SpendingInsight, error)

	// FindByAccounts retrieves the stored insights across several accounts,
	// newest first.
	FindByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*entity.SpendingInsight, error)
}
