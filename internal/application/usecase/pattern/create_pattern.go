// Package pattern contains the pattern matching, classification and
// learning use cases.
package pattern

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// CreatePatternInput represents the input for manual pattern creation.
type CreatePatternInput struct {
	Value      string
	Kind       entity.PatternKind
	CategoryID uuid.UUID
	OwnerID    uuid.UUID
}

// CreatePatternOutput represents the output of pattern creation.
type CreatePatternOutput struct {
	Pattern *entity.Pattern
}

// CreatePatternUseCase handles manual pattern creation. Manually created
// patterns start with zero statistics like synthesized ones, so they only
// influence suggestions once reinforced.
type CreatePatternUseCase struct {
	patternRepo  adapter.PatternRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreatePatternUseCase creates a new CreatePatternUseCase instance.
func NewCreatePatternUseCase(
	patternRepo adapter.PatternRepository,
	categoryRepo adapter.CategoryRepository,
) *CreatePatternUseCase {
	return &CreatePatternUseCase{
		patternRepo:  patternRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the pattern creation.
func (uc *CreatePatternUseCase) Execute(ctx context.Context, input CreatePatternInput) (*CreatePatternOutput, error) {
	if input.Value == "" {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodeMissingPatternFields,
			"pattern value is required",
			domainerror.ErrPatternMissingFields,
		)
	}

	switch input.Kind {
	case entity.PatternKindMerchant, entity.PatternKindTemporal:
	case entity.PatternKindAmount:
		if _, ok := entity.ParseAmountPatternValue(input.Value); !ok {
			return nil, domainerror.NewPatternError(
				domainerror.ErrCodeInvalidPatternValue,
				"amount pattern value must be '=' followed by a decimal amount",
				domainerror.ErrInvalidPatternValue,
			)
		}
	default:
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodeInvalidPatternKind,
			"kind must be merchant, temporal or amount",
			domainerror.ErrInvalidPatternKind,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if category.OwnerID != input.OwnerID {
		return nil, domainerror.NewPatternError(
			domainerror.ErrCodeNotAuthorizedPattern,
			"category does not belong to the requesting user",
			domainerror.ErrNotAuthorizedToModifyPattern,
		)
	}

	p := entity.NewPattern(input.Value, input.Kind, input.CategoryID)
	if err := uc.patternRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domainerror.ErrPatternExists) {
			return nil, domainerror.NewPatternError(
				domainerror.ErrCodePatternExists,
				"a pattern with this value and kind already exists",
				domainerror.ErrPatternExists,
			)
		}
		return nil, fmt.Errorf("failed to create pattern: %w", err)
	}

	return &CreatePatternOutput{Pattern: p}, nil
}
