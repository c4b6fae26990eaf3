package analysis

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo(accounts ...*entity.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domainerror.ErrAccountNotFound
	}
	return a, nil
}

func (r *fakeAccountRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeTransactionRepo) CreateBatch(_ context.Context, txs []*entity.Transaction) error {
	r.transactions = append(r.transactions, txs...)
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByAccountSince(_ context.Context, accountID uuid.UUID, since time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.transactions {
		if tx.AccountID == accountID && !tx.Date.Before(since) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeTransactionRepo) UpdateEnvelope(_ context.Context, transactionID uuid.UUID, envelopeID uuid.UUID) error {
	for _, tx := range r.transactions {
		if tx.ID == transactionID {
			tx.EnvelopeID = &envelopeID
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

type fakeEnvelopeRepo struct {
	envelopes []*entity.Envelope
}

func (r *fakeEnvelopeRepo) Create(_ context.Context, envelope *entity.Envelope) error {
	r.envelopes = append(r.envelopes, envelope)
	return nil
}

func (r *fakeEnvelopeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Envelope, error) {
	for _, e := range r.envelopes {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domainerror.ErrEnvelopeNotFound
}

func (r *fakeEnvelopeRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Envelope, error) {
	var out []*entity.Envelope
	for _, e := range r.envelopes {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeInsightRepo struct {
	byAccount map[uuid.UUID][]*entity.SpendingInsight
}

func newFakeInsightRepo() *fakeInsightRepo {
	return &fakeInsightRepo{byAccount: make(map[uuid.UUID][]*entity.SpendingInsight)}
}

func (r *fakeInsightRepo) ReplaceForAccount(_ context.Context, accountID uuid.UUID, insights []*entity.SpendingInsight) error {
	r.byAccount[accountID] = insights
	return nil
}

func (r *fakeInsightRepo) FindByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.SpendingInsight, error) {
	return r.byAccount[accountID], nil
}

func (r *fakeInsightRepo) FindByAccounts(_ context.Context, accountIDs []uuid.UUID) ([]*entity.SpendingInsight, error) {
	var out []*entity.SpendingInsight
	for _, id := range accountIDs {
		out = append(out, r.byAccount[id]...)
	}
	return out, nil
}

type fakeAnalysisCache struct {
	entries map[uuid.UUID][]*entity.AccountAnalysis
	sets    int
	hits    int
}

func newFakeAnalysisCache() *fakeAnalysisCache {
	return &fakeAnalysisCache{entries: make(map[uuid.UUID][]*entity.AccountAnalysis)}
}

func (c *fakeAnalysisCache) Get(_ context.Context, userID uuid.UUID) ([]*entity.AccountAnalysis, bool, error) {
	analyses, ok := c.entries[userID]
	if ok {
		c.hits++
	}
	return analyses, ok, nil
}

func (c *fakeAnalysisCache) Set(_ context.Context, userID uuid.UUID, analyses []*entity.AccountAnalysis, _ time.Duration) error {
	c.entries[userID] = analyses
	c.sets++
	return nil
}

func (c *fakeAnalysisCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	delete(c.entries, userID)
	return nil
}

type analyzeFixture struct {
	ownerID         uuid.UUID
	accountRepo     *fakeAccountRepo
	transactionRepo *fakeTransactionRepo
	envelopeRepo    *fakeEnvelopeRepo
	insightRepo     *fakeInsightRepo
	cache           *fakeAnalysisCache
	uc              *AnalyzeAccountsUseCase
	now             time.Time
}

func newAnalyzeFixture() *analyzeFixture {
	f := &analyzeFixture{
		ownerID:         uuid.New(),
		accountRepo:     newFakeAccountRepo(),
		transactionRepo: &fakeTransactionRepo{},
		envelopeRepo:    &fakeEnvelopeRepo{},
		insightRepo:     newFakeInsightRepo(),
		cache:           newFakeAnalysisCache(),
		now:             time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
	cfg := testConfig()
	f.uc = NewAnalyzeAccountsUseCase(
		f.accountRepo,
		f.transactionRepo,
		f.envelopeRepo,
		f.insightRepo,
		f.cache,
		NewAnalyzer(cfg),
		cfg,
	)
	f.uc.now = func() time.Time { return f.now }
	return f
}

func (f *analyzeFixture) addAccount(name string) *entity.Account {
	account := entity.NewAccount(name, entity.AccountTypeChecking, "Test Bank", f.ownerID)
	_ = f.accountRepo.Create(context.Background(), account)
	return account
}

func TestAnalyzeAccountsEndToEnd(t *testing.T) {
	f := newAnalyzeFixture()
	account := f.addAccount("Checking")

	// Monthly Netflix charges inside the window.
	for months := 1; months <= 4; months++ {
		_ = f.transactionRepo.Create(context.Background(),
			expense(account.ID, nil, f.now.AddDate(0, -months, 0), "Netflix", "15.99"))
	}

	out, err := f.uc.Execute(context.Background(), AnalyzeAccountsInput{OwnerID: f.ownerID})
	require.NoError(t, err)
	require.Len(t, out.Analyses, 1)

	analysis := out.Analyses[0]
	assert.Equal(t, account.ID, analysis.AccountID)
	assert.Equal(t, "Checking", analysis.AccountName)
	assert.Equal(t, []string{"Netflix"}, analysis.TopMerchants)
	require.Contains(t, analysis.MerchantMetrics, "Netflix")
	assert.Equal(t, 4, analysis.MerchantMetrics["Netflix"].TransactionCount)

	recurring := insightsOfType(analysis.Insights, entity.InsightTypeRecurringPayment)
	assert.NotEmpty(t, recurring, "a monthly charge must surface as recurring")

	persisted, err := f.insightRepo.FindByAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis.Insights, persisted, "insights are persisted as generated")
}

func TestAnalyzeAccountsWindowExcludesOldTransactions(t *testing.T) {
	f := newAnalyzeFixture()
	account := f.addAccount("Checking")

	_ = f.transactionRepo.Create(context.Background(),
		expense(account.ID, nil, f.now.AddDate(0, -1, 0), "Recent Shop", "10"))
	_ = f.transactionRepo.Create(context.Background(),
		expense(account.ID, nil, f.now.AddDate(0, -12, 0), "Ancient Shop", "10"))

	out, err := f.uc.Execute(context.Background(), AnalyzeAccountsInput{OwnerID: f.ownerID})
	require.NoError(t, err)
	require.Len(t, out.Analyses, 1)
	assert.Contains(t, out.Analyses[0].MerchantMetrics, "Recent Shop")
	assert.NotContains(t, out.Analyses[0].MerchantMetrics, "Ancient Shop")
}

func TestAnalyzeAccountsUsesCache(t *testing.T) {
	f := newAnalyzeFixture()
	f.addAccount("Checking")

	_, err := f.uc.Execute(context.Background(), AnalyzeAccountsInput{OwnerID: f.ownerID})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.sets)

	_, err = f.uc.Execute(context.Background(), AnalyzeAccountsInput{OwnerID: f.ownerID})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits, "second run must be served from cache")
	assert.Equal(t, 1, f.cache.sets, "cache hit must not recompute")
}

func TestAnalyzeAccountsSharedMerchants(t *testing.T) {
	f := newAnalyzeFixture()
	checking := f.addAccount("Checking")
	credit := f.addAccount("Credit Card")

	for _, accountID := range []uuid.UUID{checking.ID, credit.ID} {
		_ = f.transactionRepo.Create(context.Background(),
			expense(accountID, nil, f.now.AddDate(0, -1, 0), "Netflix", "15.99"))
	}
	_ = f.transactionRepo.Create(context.Background(),
		expense(checking.ID, nil, f.now.AddDate(0, -1, 0), "Grocer", "40"))

	out, err := f.uc.Execute(context.Background(), AnalyzeAccountsInput{OwnerID: f.ownerID})
	require.NoError(t, err)
	require.Len(t, out.Analyses, 2)

	byID := make(map[uuid.UUID]*entity.AccountAnalysis)
	for _, analysis := range out.Analyses {
		byID[analysis.AccountID] = analysis
		assert.Equal(t, []string{"Netflix"}, analysis.SharedMerchants)
		reallocation := insightsOfType(analysis.Insights, entity.InsightTypeReallocationSuggestion)
		require.Len(t, reallocation, 1)
		assert.Contains(t, reallocation[0].Message, "Netflix")
	}

	// Checking has {Netflix, Grocer}, the card {Netflix}: overlap 1 of 2.
	assert.InDelta(t, 0.5, byID[checking.ID].AccountSimilarity[credit.ID], 1e-9)
	assert.InDelta(t, 0.5, byID[credit.ID].AccountSimilarity[checking.ID], 1e-9)
}

func TestAnalyzeAccountsNoAccounts(t *testing.T) {
	f := newAnalyzeFixture()

	out, err := f.uc.Execute(context.Background(), AnalyzeAccountsInput{OwnerID: f.ownerID})
	require.NoError(t, err)
	assert.Empty(t, out.Analyses)
}

func TestListInsights(t *testing.T) {
	f := newAnalyzeFixture()
	account := f.addAccount("Checking")
	other := f.addAccount("Savings")

	first := entity.NewSpendingInsight(account.ID, entity.InsightTypeRecurringPayment, "m1", 0.8)
	second := entity.NewSpendingInsight(other.ID, entity.InsightTypeBudgetSuggestion, "m2", 0.9)
	require.NoError(t, f.insightRepo.ReplaceForAccount(context.Background(), account.ID, []*entity.SpendingInsight{first}))
	require.NoError(t, f.insightRepo.ReplaceForAccount(context.Background(), other.ID, []*entity.SpendingInsight{second}))

	uc := NewListInsightsUseCase(f.accountRepo, f.insightRepo)

	t.Run("all accounts", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListInsightsInput{OwnerID: f.ownerID})
		require.NoError(t, err)
		assert.Len(t, out.Insights, 2)
	})

	t.Run("single account", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListInsightsInput{OwnerID: f.ownerID, AccountID: &account.ID})
		require.NoError(t, err)
		require.Len(t, out.Insights, 1)
		assert.Equal(t, first.ID, out.Insights[0].ID)
	})

	t.Run("foreign account rejected", func(t *testing.T) {
		foreign := entity.NewAccount("Foreign", entity.AccountTypeChecking, "Other Bank", uuid.New())
		require.NoError(t, f.accountRepo.Create(context.Background(), foreign))

		_, err := uc.Execute(context.Background(), ListInsightsInput{OwnerID: f.ownerID, AccountID: &foreign.ID})
		assert.ErrorIs(t, err, domainerror.ErrAnalysisAccountNotFound)
	})
}
