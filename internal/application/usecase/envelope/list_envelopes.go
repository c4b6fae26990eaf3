// Package envelope contains budget envelope use cases. Envelopes are the
// buckets transactions are classified into.
package envelope

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
)

// ListEnvelopesInput represents the input for listing envelopes.
type ListEnvelopesInput struct {
	OwnerID uuid.UUID
}

// ListEnvelopesOutput represents the output of listing envelopes.
type ListEnvelopesOutput struct {
	Envelopes []*entity.Envelope
}

// ListEnvelopesUseCase handles listing envelopes logic.
type ListEnvelopesUseCase struct {
	envelopeRepo adapter.EnvelopeRepository
}

// NewListEnvelopesUseCase creates a new ListEnvelopesUseCase instance.
func NewListEnvelopesUseCase(envelopeRepo adapter.EnvelopeRepository) *ListEnvelopesUseCase {
	return &ListEnvelopesUseCase{
		envelopeRepo: envelopeRepo,
	}
}

// Execute performs the envelope listing.
func (uc *ListEnvelopesUseCase) Execute(ctx context.Context, input ListEnvelopesInput) (*ListEnvelopesOutput, error) {
	envelopes, err := uc.envelopeRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}
	return &ListEnvelopesOutput{Envelopes: envelopes}, nil
}
