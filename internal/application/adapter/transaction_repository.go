// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateBatch creates multiple transactions in one operation.
	CreateBatch(ctx context.Context, transactions []*entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByAccountSince retrieves an account's transactions dated on or
	// after since, ordered by date ascending.
	FindByAccountSince(ctx context.Context, accountID uuid.UUID, since time.Time) ([]*entity.Transaction, error)

	// UpdateEnvelope reassigns a transaction to an envelope.
	UpdateEnvelope(ctx context.Context, transactionID uuid.UUID, envelopeID uuid.UUID) error
}
