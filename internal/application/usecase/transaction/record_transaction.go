// Package transaction contains the transaction recording and import use
// cases, the write path that feeds the pattern learner.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/application/usecase/pattern"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// RecordTransactionInput represents the input for transaction recording.
// EnvelopeConfirmed marks the envelope assignment as user-confirmed, which
// is the positive feedback signal for the learner; recording with an
// envelope but without confirmation still reinforces matching patterns'
// match counters.
type RecordTransactionInput struct {
	OwnerID           uuid.UUID
	AccountID         uuid.UUID
	EnvelopeID        *uuid.UUID
	Date              time.Time
	Description       string
	Amount            decimal.Decimal
	Type              entity.TransactionType
	EnvelopeConfirmed bool
}

// RecordTransactionOutput represents the output of transaction recording.
type RecordTransactionOutput struct {
	Transaction        *entity.Transaction
	PatternsReinforced int
	PatternsCreated    int
}

// RecordTransactionUseCase persists a transaction and feeds it to the
// pattern learner. Learning and cache invalidation are best-effort: the
// recorded transaction is the contract.
type RecordTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	envelopeRepo    adapter.EnvelopeRepository
	learner         *pattern.LearnFromTransactionUseCase
	cache           adapter.AnalysisCache
}

// NewRecordTransactionUseCase creates a new RecordTransactionUseCase instance.
func NewRecordTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	envelopeRepo adapter.EnvelopeRepository,
	learner *pattern.LearnFromTransactionUseCase,
	cache adapter.AnalysisCache,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		envelopeRepo:    envelopeRepo,
		learner:         learner,
		cache:           cache,
	}
}

// Execute performs the transaction recording.
func (uc *RecordTransactionUseCase) Execute(ctx context.Context, input RecordTransactionInput) (*RecordTransactionOutput, error) {
	if err := uc.validate(ctx, input); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.AccountID,
		input.EnvelopeID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
	)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	output := &RecordTransactionOutput{Transaction: transaction}
	learned, err := uc.learner.Execute(ctx, pattern.LearnFromTransactionInput{
		OwnerID:     input.OwnerID,
		Transaction: transaction,
		WasCorrect:  input.EnvelopeConfirmed,
	})
	if err != nil {
		slog.Warn("Pattern learning failed for recorded transaction",
			"transaction_id", transaction.ID,
			"error", err,
		)
	} else {
		output.PatternsReinforced = learned.PatternsReinforced
		output.PatternsCreated = learned.PatternsCreated
	}

	if err := uc.cache.Invalidate(ctx, input.OwnerID); err != nil {
		slog.Warn("Analysis cache invalidation failed", "error", err)
	}

	return output, nil
}

func (uc *RecordTransactionUseCase) validate(ctx context.Context, input RecordTransactionInput) error {
	if input.Description == "" || input.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTxnFields,
			"date and description are required",
			domainerror.ErrTransactionMissingFields,
		)
	}
	if len(input.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTxnFields,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrTransactionMissingFields,
		)
	}
	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}
	if input.Type != entity.TransactionTypeExpense && input.Type != entity.TransactionTypeIncome {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil || account.OwnerID != input.OwnerID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	if input.EnvelopeID != nil {
		envelope, err := uc.envelopeRepo.FindByID(ctx, *input.EnvelopeID)
		if err != nil || envelope.OwnerID != input.OwnerID {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeEnvelopeNotFound,
				"envelope not found",
				domainerror.ErrEnvelopeNotFound,
			)
		}
	}
	return nil
}
