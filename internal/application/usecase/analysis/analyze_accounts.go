// Package analysis contains the account analysis, anomaly detection and
// insight generation use cases.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/envelofy/backend/config"
	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
)

// AnalyzeAccountsInput represents the input for account analysis.
type AnalyzeAccountsInput struct {
	OwnerID uuid.UUID
}

// AnalyzeAccountsOutput represents the output of account analysis, one
// report per account the user owns, in account-ID order.
type AnalyzeAccountsOutput struct {
	Analyses []*entity.AccountAnalysis
}

// AnalyzeAccountsUseCase runs the full analytical pipeline over every
// account of a user: merchant metrics, envelope metrics, trends, anomaly
// detection and insight synthesis. Results are cached per user and the
// generated insights are persisted so they can be listed without
// recomputation.
type AnalyzeAccountsUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	envelopeRepo    adapter.EnvelopeRepository
	insightRepo     adapter.InsightRepository
	cache           adapter.AnalysisCache

	analyzer *Analyzer
	cfg      config.AnalysisConfig

	// now is swappable for tests; the analysis window and the frequency
	// anomaly check both anchor on it.
	now func() time.Time
}

// NewAnalyzeAccountsUseCase creates a new AnalyzeAccountsUseCase instance.
func NewAnalyzeAccountsUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	envelopeRepo adapter.EnvelopeRepository,
	insightRepo adapter.InsightRepository,
	cache adapter.AnalysisCache,
	analyzer *Analyzer,
	cfg config.AnalysisConfig,
) *AnalyzeAccountsUseCase {
	return &AnalyzeAccountsUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		envelopeRepo:    envelopeRepo,
		insightRepo:     insightRepo,
		cache:           cache,
		analyzer:        analyzer,
		cfg:             cfg,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Execute analyzes all of the user's accounts. Cache and insight
// persistence failures are logged, never fatal: the computed analyses are
// the contract.
func (uc *AnalyzeAccountsUseCase) Execute(ctx context.Context, input AnalyzeAccountsInput) (*AnalyzeAccountsOutput, error) {
	if cached, ok, err := uc.cache.Get(ctx, input.OwnerID); err != nil {
		slog.Warn("Analysis cache read failed, recomputing", "error", err)
	} else if ok {
		return &AnalyzeAccountsOutput{Analyses: cached}, nil
	}

	accounts, err := uc.accountRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].ID.String() < accounts[j].ID.String()
	})

	envelopes, err := uc.envelopeRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load envelopes: %w", err)
	}

	now := uc.now()
	since := now.AddDate(0, -uc.cfg.WindowMonths, 0)

	analyses := make([]*entity.AccountAnalysis, 0, len(accounts))
	merchantsByAccount := make(map[uuid.UUID][]string, len(accounts))
	for _, account := range accounts {
		transactions, err := uc.transactionRepo.FindByAccountSince(ctx, account.ID, since)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions for account %s: %w", account.ID, err)
		}

		metrics := uc.analyzer.MerchantMetrics(transactions)
		anomalies := uc.analyzer.DetectAnomalies(transactions, now)
		envelopeMetrics := uc.analyzer.EnvelopeMetrics(transactions, envelopes)
		volumeTrend := uc.analyzer.MonthlyVolumeTrend(transactions)

		analyses = append(analyses, &entity.AccountAnalysis{
			AccountID:          account.ID,
			AccountName:        account.Name,
			MonthlyVolumeTrend: volumeTrend,
			TopMerchants:       uc.analyzer.TopMerchants(metrics),
			MerchantMetrics:    metrics,
			EnvelopeMetrics:    envelopeMetrics,
			DayOfWeekSpending:  uc.analyzer.DayOfWeekSpending(transactions),
			Anomalies:          anomalies,
			Insights:           uc.analyzer.SynthesizeInsights(account.ID, metrics, envelopeMetrics, volumeTrend, anomalies),
		})
		merchantsByAccount[account.ID] = sortedMerchants(metrics)
	}

	uc.attachSharedMerchants(analyses, merchantsByAccount)

	for _, analysis := range analyses {
		if err := uc.insightRepo.ReplaceForAccount(ctx, analysis.AccountID, analysis.Insights); err != nil {
			slog.Warn("Failed to persist insights", "account_id", analysis.AccountID, "error", err)
		}
	}
	if err := uc.cache.Set(ctx, input.OwnerID, analyses, uc.cfg.CacheTTL); err != nil {
		slog.Warn("Analysis cache write failed", "error", err)
	}

	return &AnalyzeAccountsOutput{Analyses: analyses}, nil
}

// attachSharedMerchants marks merchants that appear on more than one of the
// user's accounts, appends a reallocation suggestion to each affected
// account's insights, and scores the pairwise Jaccard overlap of merchant
// sets.
func (uc *AnalyzeAccountsUseCase) attachSharedMerchants(analyses []*entity.AccountAnalysis, merchantsByAccount map[uuid.UUID][]string) {
	if len(analyses) < 2 {
		return
	}

	accountCount := make(map[string]int)
	for _, merchants := range merchantsByAccount {
		for _, merchant := range merchants {
			accountCount[merchant]++
		}
	}

	for _, analysis := range analyses {
		var shared []string
		for _, merchant := range merchantsByAccount[analysis.AccountID] {
			if accountCount[merchant] > 1 {
				shared = append(shared, merchant)
			}
		}
		analysis.AccountSimilarity = uc.similarityFor(analysis.AccountID, merchantsByAccount)
		if len(shared) == 0 {
			continue
		}
		analysis.SharedMerchants = shared
		if insight := uc.analyzer.ReallocationInsight(analysis.AccountID, shared); insight != nil {
			analysis.Insights = append(analysis.Insights, insight)
		}
	}
}

// similarityFor computes the Jaccard index between one account's merchant
// set and each of the user's other accounts. Pairs where both sets are
// empty are omitted.
func (uc *AnalyzeAccountsUseCase) similarityFor(accountID uuid.UUID, merchantsByAccount map[uuid.UUID][]string) map[uuid.UUID]float64 {
	mine := make(map[string]bool, len(merchantsByAccount[accountID]))
	for _, merchant := range merchantsByAccount[accountID] {
		mine[merchant] = true
	}

	similarity := make(map[uuid.UUID]float64)
	for otherID, merchants := range merchantsByAccount {
		if otherID == accountID {
			continue
		}
		intersection := 0
		for _, merchant := range merchants {
			if mine[merchant] {
				intersection++
			}
		}
		union := len(mine) + len(merchants) - intersection
		if union == 0 {
			continue
		}
		similarity[otherID] = float64(intersection) / float64(union)
	}
	if len(similarity) == 0 {
		return nil
	}
	return similarity
}
