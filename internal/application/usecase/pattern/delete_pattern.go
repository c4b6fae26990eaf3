// Package pattern contains the pattern matching, classification and
// learning use cases.
package pattern

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// DeletePatternInput represents the input for pattern deletion.
type DeletePatternInput struct {
	PatternID uuid.UUID
	OwnerID   uuid.UUID
}

// DeletePatternOutput represents the output of pattern deletion.
type DeletePatternOutput struct {
	Success bool
}

// DeletePatternUseCase handles explicit pattern deletion. The learner never
// deletes patterns; this is the only removal path.
type DeletePatternUseCase struct {
	patternRepo  adapter.PatternRepository
	categoryRepo adapter.CategoryRepository
}

// NewDeletePatternUseCase creates a new DeletePatternUseCase instance.
func NewDeletePatternUseCase(
	patternRepo adapter.PatternRepository,
	categoryRepo adapter.CategoryRepository,
) *DeletePatternUseCase {
	return &DeletePatternUseCase{
		patternRepo:  patternRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the pattern deletion.
func (uc *DeletePatternUseCase) Execute(ctx context.Context, input DeletePatternInput) (*DeletePatternOutput, error) {
	p, err := uc.patternRepo.FindByID(ctx, input.PatternID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPatternNotFound) {
			return nil, domainerror.NewPatternError(
				domainerror.ErrCodePatternNotFound,
				"pattern not found",
				domainerror.ErrPatternNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find pattern: %w", err)
	}

	// Ownership is validated through the pattern's category.
	category, err := uc.categoryRepo.FindByID(ctx, p.CategoryID)
	if err != nil || category.OwnerID != input.OwnerID {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodeNotAuthorizedPattern,
			"not authorized to delete this pattern",
			domainerror.ErrNotAuthorizedToModifyPattern,
		)
	}

	if err := uc.patternRepo.Delete(ctx, input.PatternID); err != nil {
		return nil, fmt.Errorf("failed to delete pattern: %w", err)
	}

	return &DeletePatternOutput{Success: true}, nil
}
