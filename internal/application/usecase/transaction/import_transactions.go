// Package transaction contains the transaction recording and import use
// cases, the write path that feeds the pattern learner.
package transaction

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/application/usecase/pattern"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// csvDateLayout is the accepted date format for import rows.
const csvDateLayout = "2006-01-02"

// DefaultImportMinScore is the minimum normalized suggestion score required
// to auto-assign an envelope to an imported row, used when no override is
// configured.
const DefaultImportMinScore = 0.5

// ImportTransactionsInput represents the input for CSV import. The reader
// must produce a header row (date, description, amount, type) followed by
// data rows.
type ImportTransactionsInput struct {
	OwnerID   uuid.UUID
	AccountID uuid.UUID
	CSV       io.Reader
}

// ImportTransactionsOutput represents the output of CSV import.
type ImportTransactionsOutput struct {
	ImportedCount    int
	CategorizedCount int
	Transactions     []*entity.Transaction
}

// ImportTransactionsUseCase parses a CSV export into transactions, runs each
// row through the classifier once, and auto-assigns the top suggested
// envelope when its normalized score clears the import threshold. A
// malformed row aborts the whole import; there are no partial imports.
type ImportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	classifier      *pattern.SuggestEnvelopesUseCase
	cache           adapter.AnalysisCache
	minScore        float64
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase
// instance. A non-positive minScore falls back to DefaultImportMinScore.
func NewImportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	classifier *pattern.SuggestEnvelopesUseCase,
	cache adapter.AnalysisCache,
	minScore float64,
) *ImportTransactionsUseCase {
	if minScore <= 0 {
		minScore = DefaultImportMinScore
	}
	return &ImportTransactionsUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		classifier:      classifier,
		cache:           cache,
		minScore:        minScore,
	}
}

// Execute performs the CSV import.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil || account.OwnerID != input.OwnerID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	reader := csv.NewReader(input.CSV)
	reader.TrimLeadingSpace = true

	// Header row is required and discarded.
	if _, err := reader.Read(); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyCSV,
			"csv must start with a header row",
			domainerror.ErrEmptyCSV,
		)
	}

	var transactions []*entity.Transaction
	categorized := 0
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, invalidRow(row, err)
		}

		transaction, err := uc.parseRow(input.AccountID, record)
		if err != nil {
			return nil, invalidRow(row, err)
		}

		if uc.assignEnvelope(ctx, input.OwnerID, transaction) {
			categorized++
		}
		transactions = append(transactions, transaction)
	}

	if len(transactions) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyCSV,
			"csv contains no transactions",
			domainerror.ErrEmptyCSV,
		)
	}

	if err := uc.transactionRepo.CreateBatch(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to import transactions: %w", err)
	}
	if err := uc.cache.Invalidate(ctx, input.OwnerID); err != nil {
		slog.Warn("Analysis cache invalidation failed", "error", err)
	}

	return &ImportTransactionsOutput{
		ImportedCount:    len(transactions),
		CategorizedCount: categorized,
		Transactions:     transactions,
	}, nil
}

// parseRow converts one CSV record (date, description, amount, type) into a
// transaction. The type column is optional; it defaults to expense.
func (uc *ImportTransactionsUseCase) parseRow(accountID uuid.UUID, record []string) (*entity.Transaction, error) {
	if len(record) < 3 {
		return nil, fmt.Errorf("expected at least 3 columns, got %d", len(record))
	}

	date, err := time.Parse(csvDateLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", record[0], err)
	}

	description := strings.TrimSpace(record[1])
	if description == "" {
		return nil, fmt.Errorf("empty description")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("bad amount %q: %w", record[2], err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount %q must be positive", record[2])
	}

	transactionType := entity.TransactionTypeExpense
	if len(record) > 3 {
		switch strings.ToLower(strings.TrimSpace(record[3])) {
		case "", string(entity.TransactionTypeExpense):
		case string(entity.TransactionTypeIncome):
			transactionType = entity.TransactionTypeIncome
		default:
			return nil, fmt.Errorf("bad type %q", record[3])
		}
	}

	return entity.NewTransaction(accountID, nil, date, description, amount, transactionType), nil
}

// assignEnvelope runs the classifier once for the row and assigns the top
// suggestion when it clears the import threshold. Classification failures
// leave the row uncategorized.
func (uc *ImportTransactionsUseCase) assignEnvelope(ctx context.Context, ownerID uuid.UUID, transaction *entity.Transaction) bool {
	suggested, err := uc.classifier.Execute(ctx, pattern.SuggestEnvelopesInput{
		OwnerID:     ownerID,
		Transaction: transaction,
	})
	if err != nil {
		slog.Warn("Classification failed for imported row",
			"description", transaction.Description,
			"error", err,
		)
		return false
	}

	var best uuid.UUID
	bestScore := 0.0
	for envelopeID, score := range suggested.Suggestions {
		// Ties break toward the lower envelope ID so replays assign the
		// same envelope.
		if score > bestScore || (score == bestScore && envelopeID.String() < best.String()) {
			best = envelopeID
			bestScore = score
		}
	}
	if bestScore < uc.minScore || best == uuid.Nil {
		return false
	}
	envelopeID := best
	transaction.EnvelopeID = &envelopeID
	return true
}

func invalidRow(row int, err error) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidCSVRow,
		fmt.Sprintf("row %d: %s", row, err),
		domainerror.ErrInvalidCSVRow,
	)
}
