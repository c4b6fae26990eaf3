package transaction

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelofy/backend/internal/application/usecase/pattern"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// fixture wires the recording and import use cases against in-memory
// repositories, with a real matcher, learner and classifier behind them.
type fixture struct {
	ownerID  uuid.UUID
	account  *entity.Account
	category *entity.Category
	envelope *entity.Envelope

	transactions *memTransactionRepo
	accounts     *memAccountRepo
	envelopes    *memEnvelopeRepo
	patterns     *memPatternRepo
	categories   *memCategoryRepo
	cache        *memCache

	record   *RecordTransactionUseCase
	importUC *ImportTransactionsUseCase
}

func newFixture() *fixture {
	f := &fixture{
		ownerID:      uuid.New(),
		transactions: &memTransactionRepo{},
		accounts:     &memAccountRepo{},
		envelopes:    &memEnvelopeRepo{},
		patterns:     newMemPatternRepo(),
		categories:   &memCategoryRepo{},
		cache:        &memCache{},
	}
	f.account = entity.NewAccount("Checking", entity.AccountTypeChecking, "Test Bank", f.ownerID)
	f.accounts.accounts = append(f.accounts.accounts, f.account)

	f.category = entity.NewCategory("Dining", "", f.ownerID)
	f.categories.categories = append(f.categories.categories, f.category)
	f.patterns.owners[f.category.ID] = f.ownerID

	f.envelope = entity.NewEnvelope("Dining Out", decimal.RequireFromString("200"), &f.category.ID, f.ownerID)
	f.envelopes.envelopes = append(f.envelopes.envelopes, f.envelope)

	matcher := pattern.NewMatcher()
	learner := pattern.NewLearnFromTransactionUseCase(f.patterns, f.envelopes, matcher)
	classifier := pattern.NewSuggestEnvelopesUseCase(f.patterns, f.categories, f.envelopes, matcher, 0.3)

	f.record = NewRecordTransactionUseCase(f.transactions, f.accounts, f.envelopes, learner, f.cache)
	f.importUC = NewImportTransactionsUseCase(f.transactions, f.accounts, classifier, f.cache, 0.5)
	return f
}

func (f *fixture) recordInput() RecordTransactionInput {
	return RecordTransactionInput{
		OwnerID:     f.ownerID,
		AccountID:   f.account.ID,
		Date:        time.Date(2026, time.May, 4, 18, 30, 0, 0, time.UTC),
		Description: "Coffee Shop #4",
		Amount:      decimal.RequireFromString("4.50"),
		Type:        entity.TransactionTypeExpense,
	}
}

func TestRecordTransactionPersistsAndInvalidatesCache(t *testing.T) {
	f := newFixture()

	out, err := f.record.Execute(context.Background(), f.recordInput())
	require.NoError(t, err)
	require.NotNil(t, out.Transaction)
	assert.Len(t, f.transactions.created, 1)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestRecordConfirmedTransactionLearnsPatterns(t *testing.T) {
	f := newFixture()

	input := f.recordInput()
	input.EnvelopeID = &f.envelope.ID
	input.EnvelopeConfirmed = true

	out, err := f.record.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 3, out.PatternsCreated, "first confirmation synthesizes all three kinds")
	assert.Zero(t, out.PatternsReinforced)

	// The same confirmed transaction again: the synthesized patterns fire.
	out, err = f.record.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Zero(t, out.PatternsCreated)
	assert.Equal(t, 3, out.PatternsReinforced)
}

func TestRecordTransactionValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		mutate  func(*RecordTransactionInput)
		wantErr error
	}{
		{
			name:    "empty description",
			mutate:  func(in *RecordTransactionInput) { in.Description = "" },
			wantErr: domainerror.ErrTransactionMissingFields,
		},
		{
			name:    "description too long",
			mutate:  func(in *RecordTransactionInput) { in.Description = strings.Repeat("x", MaxDescriptionLength+1) },
			wantErr: domainerror.ErrTransactionMissingFields,
		},
		{
			name:    "zero amount",
			mutate:  func(in *RecordTransactionInput) { in.Amount = decimal.Zero },
			wantErr: domainerror.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(in *RecordTransactionInput) { in.Amount = decimal.RequireFromString("-5") },
			wantErr: domainerror.ErrInvalidAmount,
		},
		{
			name:    "bad type",
			mutate:  func(in *RecordTransactionInput) { in.Type = "transfer" },
			wantErr: domainerror.ErrInvalidTransactionType,
		},
		{
			name:    "foreign account",
			mutate:  func(in *RecordTransactionInput) { in.AccountID = uuid.New() },
			wantErr: domainerror.ErrAccountNotFound,
		},
		{
			name: "foreign envelope",
			mutate: func(in *RecordTransactionInput) {
				id := uuid.New()
				in.EnvelopeID = &id
			},
			wantErr: domainerror.ErrEnvelopeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.recordInput()
			tt.mutate(&input)
			_, err := f.record.Execute(context.Background(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.transactions.created, "no invalid transaction may be persisted")
}

func TestImportTransactionsAutoCategorizes(t *testing.T) {
	f := newFixture()

	// A confident dining pattern: every coffee shop row should auto-assign.
	p := entity.NewPattern("coffee shop", entity.PatternKindMerchant, f.category.ID)
	p.MatchCount = 10
	p.CorrectCount = 9
	require.NoError(t, f.patterns.Create(context.Background(), p))

	csvData := strings.Join([]string{
		"date,description,amount,type",
		"2026-05-01,Coffee Shop #4,4.50,expense",
		"2026-05-02,Mystery Vendor,12.00,expense",
		"2026-05-03,Paycheck,2000.00,income",
	}, "\n")

	out, err := f.importUC.Execute(context.Background(), ImportTransactionsInput{
		OwnerID:   f.ownerID,
		AccountID: f.account.ID,
		CSV:       strings.NewReader(csvData),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.ImportedCount)
	assert.Equal(t, 1, out.CategorizedCount)
	assert.Equal(t, 1, f.cache.invalidations)

	require.Len(t, f.transactions.created, 3)
	sort.Slice(f.transactions.created, func(i, j int) bool {
		return f.transactions.created[i].Date.Before(f.transactions.created[j].Date)
	})
	coffee := f.transactions.created[0]
	require.NotNil(t, coffee.EnvelopeID)
	assert.Equal(t, f.envelope.ID, *coffee.EnvelopeID)
	assert.Nil(t, f.transactions.created[1].EnvelopeID, "no pattern matches the mystery vendor")
	assert.Equal(t, entity.TransactionTypeIncome, f.transactions.created[2].Type)
}

func TestImportTransactionsRejectsMalformedRow(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		csv  string
	}{
		{"bad date", "date,description,amount\nnot-a-date,Shop,10.00"},
		{"bad amount", "date,description,amount\n2026-05-01,Shop,ten"},
		{"negative amount", "date,description,amount\n2026-05-01,Shop,-10.00"},
		{"missing columns", "date,description,amount\n2026-05-01,Shop"},
		{"empty description", "date,description,amount\n2026-05-01,,10.00"},
		{"bad type", "date,description,amount,type\n2026-05-01,Shop,10.00,transfer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.importUC.Execute(context.Background(), ImportTransactionsInput{
				OwnerID:   f.ownerID,
				AccountID: f.account.ID,
				CSV:       strings.NewReader(tt.csv),
			})
			assert.ErrorIs(t, err, domainerror.ErrInvalidCSVRow)
		})
	}
	assert.Empty(t, f.transactions.created, "a malformed row must abort the whole import")
}

func TestImportTransactionsEmptyCSV(t *testing.T) {
	f := newFixture()

	for name, csvData := range map[string]string{
		"no content":  "",
		"header only": "date,description,amount",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.importUC.Execute(context.Background(), ImportTransactionsInput{
				OwnerID:   f.ownerID,
				AccountID: f.account.ID,
				CSV:       strings.NewReader(csvData),
			})
			assert.ErrorIs(t, err, domainerror.ErrEmptyCSV)
		})
	}
}

func TestImportTransactionsForeignAccount(t *testing.T) {
	f := newFixture()

	_, err := f.importUC.Execute(context.Background(), ImportTransactionsInput{
		OwnerID:   f.ownerID,
		AccountID: uuid.New(),
		CSV:       strings.NewReader("date,description,amount\n2026-05-01,Shop,10.00"),
	})
	assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)
}
