// Package pattern contains the pattern matching, classification and
// learning use cases.
package pattern

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// ListPatternsInput represents the input for pattern listing. CategoryID
// and Kind are optional filters; both unset lists everything the user owns.
type ListPatternsInput struct {
	OwnerID    uuid.UUID
	CategoryID *uuid.UUID
	Kind       *entity.PatternKind
}

// ListPatternsOutput represents the output of pattern listing.
type ListPatternsOutput struct {
	Patterns []*entity.Pattern
}

// ListPatternsUseCase handles pattern listing with ownership checks.
type ListPatternsUseCase struct {
	patternRepo  adapter.PatternRepository
	categoryRepo adapter.CategoryRepository
}

// NewListPatternsUseCase creates a new ListPatternsUseCase instance.
func NewListPatternsUseCase(
	patternRepo adapter.PatternRepository,
	categoryRepo adapter.CategoryRepository,
) *ListPatternsUseCase {
	return &ListPatternsUseCase{
		patternRepo:  patternRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the pattern listing.
func (uc *ListPatternsUseCase) Execute(ctx context.Context, input ListPatternsInput) (*ListPatternsOutput, error) {
	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
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
		patterns, err := uc.patternRepo.FindByCategory(ctx, *input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to list patterns by category: %w", err)
		}
		return &ListPatternsOutput{Patterns: filterByKind(patterns, input.Kind)}, nil
	}

	if input.Kind != nil {
		patterns, err := uc.patternRepo.FindByOwnerAndKind(ctx, input.OwnerID, *input.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to list patterns by kind: %w", err)
		}
		return &ListPatternsOutput{Patterns: patterns}, nil
	}

	patterns, err := uc.patternRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	return &ListPatternsOutput{Patterns: patterns}, nil
}

func filterByKind(patterns []*entity.Pattern, kind *entity.PatternKind) []*entity.Pattern {
	if kind == nil {
		return patterns
	}
	filtered := make([]*entity.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Kind == *kind {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
