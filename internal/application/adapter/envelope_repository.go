// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// EnvelopeRepository defines the interface for envelope persistence operations.
type EnvelopeRepository interface {
	// Create creates a new envelope.
	Create(ctx context.Context, envelope *entity.Envelope) error

	// FindByID retrieves an envelope by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Envelope, error)

	// FindByOwner retrieves all envelopes for a user, sorted by ID so that
	// name-based category matching is deterministic.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Envelope, error)
}
