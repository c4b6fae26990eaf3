// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	Name        string
	Type        entity.AccountType
	Institution string
	OwnerID     uuid.UUID
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if input.Name == "" || len(input.Name) > MaxAccountNameLength {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNameRequired,
			fmt.Sprintf("account name is required and must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrNameRequired,
		)
	}
	switch input.Type {
	case entity.AccountTypeChecking, entity.AccountTypeSavings, entity.AccountTypeCreditCard:
	default:
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be checking, savings or credit_card",
			domainerror.ErrInvalidAccountType,
		)
	}

	account := entity.NewAccount(input.Name, input.Type, input.Institution, input.OwnerID)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{Account: account}, nil
}
