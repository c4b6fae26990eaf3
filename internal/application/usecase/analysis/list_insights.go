// Package analysis contains the account analysis, anomaly detection and
// insight generation use cases.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// ListInsightsInput represents the input for insight listing. AccountID is
// optional; unset lists insights across all of the user's accounts.
type ListInsightsInput struct {
	OwnerID   uuid.UUID
	AccountID *uuid.UUID
}

// ListInsightsOutput represents the output of insight listing.
type ListInsightsOutput struct {
	Insights []*entity.SpendingInsight
}

// ListInsightsUseCase returns the insights persisted by the most recent
// analysis run, without recomputing anything.
type ListInsightsUseCase struct {
	accountRepo adapter.AccountRepository
	insightRepo adapter.InsightRepository
}

// NewListInsightsUseCase creates a new ListInsightsUseCase instance.
func NewListInsightsUseCase(
	accountRepo adapter.AccountRepository,
	insightRepo adapter.InsightRepository,
) *ListInsightsUseCase {
	return &ListInsightsUseCase{
		accountRepo: accountRepo,
		insightRepo: insightRepo,
	}
}

// Execute performs the insight listing.
func (uc *ListInsightsUseCase) Execute(ctx context.Context, input ListInsightsInput) (*ListInsightsOutput, error) {
	if input.AccountID != nil {
		account, err := uc.accountRepo.FindByID(ctx, *input.AccountID)
		if err != nil || account.OwnerID != input.OwnerID {
			return nil, domainerror.NewAnalysisError(
				domainerror.ErrCodeAnalysisAccountNotFound,
				"account not found",
				domainerror.ErrAnalysisAccountNotFound,
			)
		}
		insights, err := uc.insightRepo.FindByAccount(ctx, *input.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to list insights: %w", err)
		}
		return &ListInsightsOutput{Insights: insights}, nil
	}

	accounts, err := uc.accountRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	ids := make([]uuid.UUID, len(accounts))
	for i, account := range accounts {
		ids[i] = account.ID
	}
	insights, err := uc.insightRepo.FindByAccounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	return &ListInsightsOutput{Insights: insights}, nil
}
