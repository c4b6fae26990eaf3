// Package envelope contains budget envelope use cases. Envelopes are the
// buckets transactions are classified into.
package envelope

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// MaxEnvelopeNameLength is the maximum allowed length for envelope names.
const MaxEnvelopeNameLength = 100

// CreateEnvelopeInput represents the input for envelope creation.
// CategoryID optionally links the envelope to the category that newly
// synthesized patterns attach to.
type CreateEnvelopeInput struct {
	Name          string
	MonthlyBudget decimal.Decimal
	CategoryID    *uuid.UUID
	OwnerID       uuid.UUID
}

// CreateEnvelopeOutput represents the output of envelope creation.
type CreateEnvelopeOutput struct {
	Envelope *entity.Envelope
}

// CreateEnvelopeUseCase handles envelope creation logic.
type CreateEnvelopeUseCase struct {
	envelopeRepo adapter.EnvelopeRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateEnvelopeUseCase creates a new CreateEnvelopeUseCase instance.
func NewCreateEnvelopeUseCase(
	envelopeRepo adapter.EnvelopeRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateEnvelopeUseCase {
	return &CreateEnvelopeUseCase{
		envelopeRepo: envelopeRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the envelope creation.
func (uc *CreateEnvelopeUseCase) Execute(ctx context.Context, input CreateEnvelopeInput) (*CreateEnvelopeOutput, error) {
	if input.Name == "" || len(input.Name) > MaxEnvelopeNameLength {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNameRequired,
			fmt.Sprintf("envelope name is required and must not exceed %d characters", MaxEnvelopeNameLength),
			domainerror.ErrNameRequired,
		)
	}
	if input.MonthlyBudget.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNegativeBudget,
			"monthly budget must not be negative",
			domainerror.ErrNegativeBudget,
		)
	}
	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil || category.OwnerID != input.OwnerID {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeEnvelopeCategoryNotFound,
				"linked category not found",
				domainerror.ErrEnvelopeCategoryNotFound,
			)
		}
	}

	envelope := entity.NewEnvelope(input.Name, input.MonthlyBudget, input.CategoryID, input.OwnerID)
	if err := uc.envelopeRepo.Create(ctx, envelope); err != nil {
		return nil, fmt.Errorf("failed to create envelope: %w", err)
	}

	return &CreateEnvelopeOutput{Envelope: envelope}, nil
}
