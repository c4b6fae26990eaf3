package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelofy/backend/config"
	"github.com/envelofy/backend/internal/domain/entity"
)

func testConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		WindowMonths:           6,
		AmountSigma:            2.0,
		GapDeviation:           0.5,
		RecurringMinFrequency:  1.0,
		BudgetUtilizationAlert: 0.9,
		TrendAlert:             0.2,
		CacheTTL:               10 * time.Minute,
	}
}

func expense(accountID uuid.UUID, envelopeID *uuid.UUID, date time.Time, description, amount string) *entity.Transaction {
	return entity.NewTransaction(
		accountID,
		envelopeID,
		date,
		description,
		decimal.RequireFromString(amount),
		entity.TransactionTypeExpense,
	)
}

func income(accountID uuid.UUID, date time.Time, description, amount string) *entity.Transaction {
	return entity.NewTransaction(
		accountID,
		nil,
		date,
		description,
		decimal.RequireFromString(amount),
		entity.TransactionTypeIncome,
	)
}

func TestMerchantMetrics(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()
	base := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	transactions := []*entity.Transaction{
		expense(accountID, nil, base, "Netflix", "15.99"),
		expense(accountID, nil, base.AddDate(0, 0, 30), "Netflix", "15.99"),
		expense(accountID, nil, base.AddDate(0, 0, 60), "Netflix", "15.99"),
		expense(accountID, nil, base, "Hardware Store", "89.50"),
		income(accountID, base, "Salary", "3000"),
	}

	metrics := analyzer.MerchantMetrics(transactions)
	require.Len(t, metrics, 2, "income must not create a merchant")

	netflix := metrics["Netflix"]
	assert.Equal(t, 3, netflix.TransactionCount)
	assert.True(t, netflix.TotalSpent.Equal(decimal.RequireFromString("47.97")))
	assert.True(t, netflix.AverageAmount.Equal(decimal.RequireFromString("15.99")))
	assert.InDelta(t, 30.0, netflix.AverageDaysBetween, 1e-9)
	assert.InDelta(t, 30.4/30.0, netflix.MonthlyFrequency, 1e-9)

	hardware := metrics["Hardware Store"]
	assert.Equal(t, 1, hardware.TransactionCount)
	assert.Zero(t, hardware.AverageDaysBetween, "a single transaction has no gap")
	assert.Zero(t, hardware.MonthlyFrequency)
}

func TestMerchantMetricsUnsortedInput(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()
	base := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	// Dates arrive out of order; gaps must still be computed date ascending.
	transactions := []*entity.Transaction{
		expense(accountID, nil, base.AddDate(0, 0, 20), "Gym", "30"),
		expense(accountID, nil, base, "Gym", "30"),
		expense(accountID, nil, base.AddDate(0, 0, 10), "Gym", "30"),
	}

	metrics := analyzer.MerchantMetrics(transactions)
	assert.InDelta(t, 10.0, metrics["Gym"].AverageDaysBetween, 1e-9)
}

func TestTopMerchantsOrderedBySpend(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()
	base := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	var transactions []*entity.Transaction
	for i, m := range []struct {
		name   string
		amount string
	}{
		{"A", "10"}, {"B", "60"}, {"C", "20"}, {"D", "50"}, {"E", "30"}, {"F", "40"},
	} {
		transactions = append(transactions, expense(accountID, nil, base.AddDate(0, 0, i), m.name, m.amount))
	}

	top := analyzer.TopMerchants(analyzer.MerchantMetrics(transactions))
	assert.Equal(t, []string{"B", "D", "F", "E", "C"}, top, "top five by spend, largest first")
}

func TestDayOfWeekSpending(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()

	// 2026-04-06 is a Monday, 2026-04-12 a Sunday.
	monday := time.Date(2026, time.April, 6, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, time.April, 12, 12, 0, 0, 0, time.UTC)

	transactions := []*entity.Transaction{
		expense(accountID, nil, monday, "Lunch", "10"),
		expense(accountID, nil, monday.AddDate(0, 0, 7), "Lunch", "20"),
		expense(accountID, nil, sunday, "Brunch", "40"),
		income(accountID, monday, "Salary", "1000"),
	}

	spending := analyzer.DayOfWeekSpending(transactions)
	require.Len(t, spending, 2)
	assert.InDelta(t, 15.0, spending[1], 1e-9, "Monday average")
	assert.InDelta(t, 40.0, spending[7], 1e-9, "Sunday average")
}

func TestEnvelopeMetrics(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()
	ownerID := uuid.New()

	groceries := entity.NewEnvelope("Groceries", decimal.RequireFromString("400"), nil, ownerID)
	unused := entity.NewEnvelope("Vacation", decimal.RequireFromString("100"), nil, ownerID)

	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	transactions := []*entity.Transaction{
		expense(accountID, &groceries.ID, march, "Supermarket", "200"),
		expense(accountID, &groceries.ID, april, "Supermarket", "180"),
		expense(accountID, &groceries.ID, april.AddDate(0, 0, 5), "Supermarket", "200"),
	}

	metrics := analyzer.EnvelopeMetrics(transactions, []*entity.Envelope{groceries, unused})
	require.Len(t, metrics, 1, "envelopes without transactions are omitted")

	m := metrics[0]
	assert.Equal(t, groceries.ID, m.EnvelopeID)
	assert.True(t, m.TotalSpent.Equal(decimal.RequireFromString("580")))
	// April is the most recent month: 380 spent against a 400 budget.
	assert.InDelta(t, 0.95, m.BudgetUtilization, 1e-9)
	// Spend grew from 200 to 380, so the trend must be positive.
	assert.Positive(t, m.SpendingTrend)
}

func TestEnvelopeMetricsZeroBudget(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()
	envelope := entity.NewEnvelope("Misc", decimal.Zero, nil, uuid.New())

	transactions := []*entity.Transaction{
		expense(accountID, &envelope.ID, time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC), "Stuff", "50"),
	}

	metrics := analyzer.EnvelopeMetrics(transactions, []*entity.Envelope{envelope})
	require.Len(t, metrics, 1)
	assert.Zero(t, metrics[0].BudgetUtilization, "zero budget reports zero utilization, not infinity")
}

func TestNormalizedSlope(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		check  func(t *testing.T, slope float64)
	}{
		{
			name:   "steadily increasing",
			values: []float64{100, 200, 300},
			check: func(t *testing.T, slope float64) {
				assert.InDelta(t, 0.5, slope, 1e-9, "slope 100/month over mean 200")
			},
		},
		{
			name:   "steadily decreasing",
			values: []float64{300, 200, 100},
			check: func(t *testing.T, slope float64) {
				assert.InDelta(t, -0.5, slope, 1e-9)
			},
		},
		{
			name:   "flat",
			values: []float64{150, 150, 150},
			check: func(t *testing.T, slope float64) {
				assert.Zero(t, slope)
			},
		},
		{
			name:   "single point",
			values: []float64{150},
			check: func(t *testing.T, slope float64) {
				assert.Zero(t, slope)
			},
		},
		{
			name:   "all zero",
			values: []float64{0, 0, 0},
			check: func(t *testing.T, slope float64) {
				assert.Zero(t, slope)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, normalizedSlope(tt.values))
		})
	}
}

func TestMonthlyVolumeTrendFillsEmptyMonths(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()

	// Spend in January and March only; February counts as zero, so the
	// series is 300, 0, 300 and the fitted slope is flat.
	transactions := []*entity.Transaction{
		expense(accountID, nil, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), "Shop", "300"),
		expense(accountID, nil, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), "Shop", "300"),
	}

	assert.Zero(t, analyzer.MonthlyVolumeTrend(transactions))
}
