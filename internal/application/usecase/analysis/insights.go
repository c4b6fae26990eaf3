// Package analysis contains the account analysis, anomaly detection and
// insight generation use cases.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
)

// reallocationConfidence is the fixed confidence assigned to cross-account
// reallocation suggestions. Shared merchants are a structural observation,
// not a statistical one, so there is no score to derive it from.
const reallocationConfidence = 0.5

// SynthesizeInsights maps an account's metrics, trend figures and anomalies
// onto typed insight records per the configured thresholds. Output order is
// deterministic: recurring payments (by merchant), budget and trend signals
// (by envelope), the account volume trend, then anomalies (by severity).
func (a *Analyzer) SynthesizeInsights(
	accountID uuid.UUID,
	merchantMetrics map[string]entity.MerchantMetrics,
	envelopeMetrics []entity.EnvelopeMetrics,
	volumeTrend float64,
	anomalies []entity.AnomalyDetection,
) []*entity.SpendingInsight {
	var insights []*entity.SpendingInsight

	for _, merchant := range sortedMerchants(merchantMetrics) {
		m := merchantMetrics[merchant]
		if m.MonthlyFrequency < a.cfg.RecurringMinFrequency {
			continue
		}
		insights = append(insights, entity.NewSpendingInsight(
			accountID,
			entity.InsightTypeRecurringPayment,
			fmt.Sprintf("%s looks like a recurring payment (about %.1f charges per month, %s on average)",
				merchant, m.MonthlyFrequency, m.AverageAmount.StringFixed(2)),
			math.Min(1, m.MonthlyFrequency/5),
		))
	}

	for _, m := range envelopeMetrics {
		if m.BudgetUtilization > a.cfg.BudgetUtilizationAlert {
			insights = append(insights, entity.NewSpendingInsight(
				accountID,
				entity.InsightTypeBudgetSuggestion,
				fmt.Sprintf("%s is at %.0f%% of its monthly budget; consider raising the allocation",
					m.EnvelopeName, m.BudgetUtilization*100),
				math.Min(1, m.BudgetUtilization),
			))
		}
		insights = append(insights, a.trendInsight(accountID, m.SpendingTrend,
			fmt.Sprintf("Spending in %s", m.EnvelopeName))...)
	}

	insights = append(insights, a.trendInsight(accountID, volumeTrend, "Overall spending on this account")...)

	for _, anomaly := range anomalies {
		insight := entity.NewSpendingInsight(
			accountID,
			anomalyInsightType(anomaly.Type),
			anomaly.Description,
			math.Min(1, anomaly.Severity/entity.MaxAnomalySeverity),
		)
		if anomaly.TransactionID != nil {
			insight.RelatedTransactionIDs = []uuid.UUID{*anomaly.TransactionID}
		}
		insights = append(insights, insight)
	}

	return insights
}

// ReallocationInsight reports merchants charged on more than one of the
// user's accounts, suggesting the spend could be consolidated.
func (a *Analyzer) ReallocationInsight(accountID uuid.UUID, sharedMerchants []string) *entity.SpendingInsight {
	if len(sharedMerchants) == 0 {
		return nil
	}
	sorted := append([]string(nil), sharedMerchants...)
	sort.Strings(sorted)
	return entity.NewSpendingInsight(
		accountID,
		entity.InsightTypeReallocationSuggestion,
		fmt.Sprintf("You pay %s from more than one account; consolidating could simplify budgeting",
			strings.Join(sorted, ", ")),
		reallocationConfidence,
	)
}

// trendInsight turns a normalized trend into an upward or downward signal
// when it clears the configured threshold. Confidence is the trend magnitude
// capped at 1.
func (a *Analyzer) trendInsight(accountID uuid.UUID, trend float64, subject string) []*entity.SpendingInsight {
	switch {
	case trend > a.cfg.TrendAlert:
		return []*entity.SpendingInsight{entity.NewSpendingInsight(
			accountID,
			entity.InsightTypePredictedExpense,
			fmt.Sprintf("%s is trending up (%.0f%% per month); expect higher expenses ahead", subject, trend*100),
			math.Min(1, trend),
		)}
	case trend < -a.cfg.TrendAlert:
		return []*entity.SpendingInsight{entity.NewSpendingInsight(
			accountID,
			entity.InsightTypeSeasonalPattern,
			fmt.Sprintf("%s is trending down (%.0f%% per month); this may be seasonal", subject, trend*100),
			math.Min(1, -trend),
		)}
	default:
		return nil
	}
}

func anomalyInsightType(anomalyType entity.AnomalyType) entity.InsightType {
	// Frequency anomalies surface as recurring-payment signals rather than
	// a dedicated missed-payment type.
	if anomalyType == entity.AnomalyTypeFrequency {
		return entity.InsightTypeRecurringPayment
	}
	return entity.InsightTypeUnusualSpending
}
