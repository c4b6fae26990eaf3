package analysis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelofy/backend/internal/domain/entity"
)

func insightsOfType(insights []*entity.SpendingInsight, insightType entity.InsightType) []*entity.SpendingInsight {
	var out []*entity.SpendingInsight
	for _, i := range insights {
		if i.Type == insightType {
			out = append(out, i)
		}
	}
	return out
}

func TestSynthesizeRecurringPaymentInsight(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()

	metrics := map[string]entity.MerchantMetrics{
		"Netflix": {
			Merchant:         "Netflix",
			AverageAmount:    decimal.RequireFromString("15.99"),
			MonthlyFrequency: 1.01,
		},
		"Hardware Store": {
			Merchant:         "Hardware Store",
			AverageAmount:    decimal.RequireFromString("89.50"),
			MonthlyFrequency: 0.2,
		},
	}

	insights := analyzer.SynthesizeInsights(accountID, metrics, nil, 0, nil)

	recurring := insightsOfType(insights, entity.InsightTypeRecurringPayment)
	require.Len(t, recurring, 1)
	assert.Contains(t, recurring[0].Message, "Netflix")
	assert.InDelta(t, 1.01/5, recurring[0].Confidence, 1e-9)
	assert.Equal(t, accountID, recurring[0].AccountID)
}

func TestRecurringConfidenceCappedAtOne(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())

	metrics := map[string]entity.MerchantMetrics{
		"Coffee Shop": {
			Merchant:         "Coffee Shop",
			AverageAmount:    decimal.RequireFromString("4.50"),
			MonthlyFrequency: 12, // near daily
		},
	}

	insights := analyzer.SynthesizeInsights(uuid.New(), metrics, nil, 0, nil)
	recurring := insightsOfType(insights, entity.InsightTypeRecurringPayment)
	require.Len(t, recurring, 1)
	assert.Equal(t, 1.0, recurring[0].Confidence)
}

func TestSynthesizeBudgetSuggestion(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()

	envelopeMetrics := []entity.EnvelopeMetrics{
		{EnvelopeID: uuid.New(), EnvelopeName: "Groceries", BudgetUtilization: 0.95},
		{EnvelopeID: uuid.New(), EnvelopeName: "Vacation", BudgetUtilization: 0.5},
	}

	insights := analyzer.SynthesizeInsights(accountID, nil, envelopeMetrics, 0, nil)

	suggestions := insightsOfType(insights, entity.InsightTypeBudgetSuggestion)
	require.Len(t, suggestions, 1)
	assert.Contains(t, suggestions[0].Message, "Groceries")
	assert.InDelta(t, 0.95, suggestions[0].Confidence, 1e-9)
}

func TestSynthesizeTrendInsights(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()

	tests := []struct {
		name     string
		trend    float64
		wantType entity.InsightType
		wantNone bool
	}{
		{"upward trend over threshold", 0.3, entity.InsightTypePredictedExpense, false},
		{"downward trend over threshold", -0.3, entity.InsightTypeSeasonalPattern, false},
		{"trend inside threshold", 0.1, "", true},
		{"trend exactly at threshold", 0.2, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelopeMetrics := []entity.EnvelopeMetrics{
				{EnvelopeID: uuid.New(), EnvelopeName: "Dining", SpendingTrend: tt.trend},
			}
			insights := analyzer.SynthesizeInsights(accountID, nil, envelopeMetrics, 0, nil)
			if tt.wantNone {
				assert.Empty(t, insights)
				return
			}
			require.Len(t, insights, 1)
			assert.Equal(t, tt.wantType, insights[0].Type)
			assert.InDelta(t, 0.3, insights[0].Confidence, 1e-9)
		})
	}
}

func TestSynthesizeVolumeTrendInsight(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())

	insights := analyzer.SynthesizeInsights(uuid.New(), nil, nil, 0.4, nil)
	require.Len(t, insights, 1)
	assert.Equal(t, entity.InsightTypePredictedExpense, insights[0].Type)
	assert.Contains(t, insights[0].Message, "Overall spending")
}

func TestSynthesizeAnomalyInsights(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()
	txID := uuid.New()

	anomalies := []entity.AnomalyDetection{
		{
			Type:          entity.AnomalyTypeAmount,
			TransactionID: &txID,
			Merchant:      "Grocer",
			Description:   "Charge of 100.00 at Grocer is far from the usual 28.00",
			Severity:      2.0,
		},
		{
			Type:        entity.AnomalyTypeFrequency,
			Merchant:    "Gym",
			Description: "Gym usually charges every 30 days but is overdue (60 days since last charge)",
			Severity:    1.0,
		},
	}

	insights := analyzer.SynthesizeInsights(accountID, nil, nil, 0, anomalies)
	require.Len(t, insights, 2)

	unusual := insightsOfType(insights, entity.InsightTypeUnusualSpending)
	require.Len(t, unusual, 1)
	assert.InDelta(t, 2.0/5, unusual[0].Confidence, 1e-9, "confidence is severity over the cap")
	assert.Equal(t, []uuid.UUID{txID}, unusual[0].RelatedTransactionIDs)

	recurring := insightsOfType(insights, entity.InsightTypeRecurringPayment)
	require.Len(t, recurring, 1, "frequency anomalies surface as recurring payment signals")
	assert.InDelta(t, 1.0/5, recurring[0].Confidence, 1e-9)
	assert.Empty(t, recurring[0].RelatedTransactionIDs)
}

func TestReallocationInsight(t *testing.T) {
	analyzer := NewAnalyzer(testConfig())
	accountID := uuid.New()

	t.Run("no shared merchants", func(t *testing.T) {
		assert.Nil(t, analyzer.ReallocationInsight(accountID, nil))
	})

	t.Run("shared merchants listed alphabetically", func(t *testing.T) {
		insight := analyzer.ReallocationInsight(accountID, []string{"Netflix", "Gym"})
		require.NotNil(t, insight)
		assert.Equal(t, entity.InsightTypeReallocationSuggestion, insight.Type)
		assert.Contains(t, insight.Message, "Gym, Netflix")
		assert.Equal(t, reallocationConfidence, insight.Confidence)
	})
}
