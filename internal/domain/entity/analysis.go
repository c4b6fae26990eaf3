// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchantMetrics aggregates a merchant's transaction history within one
// account. Derived and ephemeral: recomputed on each analysis call.
type MerchantMetrics struct {
	Merchant           string          `json:"merchant"`
	TotalSpent         decimal.Decimal `json:"total_spent"`
	TransactionCount   int             `json:"transaction_count"`
	AverageAmount      decimal.Decimal `json:"average_amount"`
	AverageDaysBetween float64         `json:"average_days_between"` // 0 when fewer than 2 transactions
	MonthlyFrequency   float64         `json:"monthly_frequency"`    // 30.4 / AverageDaysBetween, 0-guarded
}

// EnvelopeMetrics aggregates spending against one envelope within an
// account's history.
type EnvelopeMetrics struct {
	EnvelopeID        uuid.UUID       `json:"envelope_id"`
	EnvelopeName      string          `json:"envelope_name"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	BudgetUtilization float64         `json:"budget_utilization"` // 0 when the envelope has no budget
	SpendingTrend     float64         `json:"spending_trend"`     // normalized slope, positive = increasing
}

// AnomalyType classifies what made a transaction statistically unusual.
type AnomalyType string

const (
	AnomalyTypeAmount    AnomalyType = "amount"
	AnomalyTypeFrequency AnomalyType = "frequency"
)

// MaxAnomalySeverity bounds AnomalyDetection.Severity. Severity is the
// capped z-score (amount) or capped relative gap deviation (frequency),
// so the range is [0, 5].
const MaxAnomalySeverity = 5.0

// AnomalyDetection flags a transaction or merchant whose behavior deviates
// from its historical pattern.
type AnomalyDetection struct {
	Type          AnomalyType `json:"type"`
	TransactionID *uuid.UUID  `json:"transaction_id,omitempty"` // nil for merchant-level frequency anomalies
	Merchant      string      `json:"merchant"`
	Description   string      `json:"description"`
	Severity      float64     `json:"severity"` // [0, MaxAnomalySeverity]
}

// InsightType classifies a generated spending insight.
type InsightType string

const (
	InsightTypeRecurringPayment       InsightType = "recurring_payment"
	InsightTypeUnusualSpending        InsightType = "unusual_spending"
	InsightTypePredictedExpense       InsightType = "predicted_expense"
	InsightTypeBudgetSuggestion       InsightType = "budget_suggestion"
	InsightTypeSeasonalPattern        InsightType = "seasonal_pattern"
	InsightTypeReallocationSuggestion InsightType = "reallocation_suggestion"
)

// SpendingInsight is a human-readable, typed, confidence-scored summary
// derived from metrics, anomalies and trends. Confidence is in [0, 1].
type SpendingInsight struct {
	ID                    uuid.UUID   `json:"id"`
	AccountID             uuid.UUID   `json:"account_id"`
	Type                  InsightType `json:"type"`
	Message               string      `json:"message"`
	Confidence            float64     `json:"confidence"`
	RelatedTransactionIDs []uuid.UUID `json:"related_transaction_ids,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
}

// NewSpendingInsight creates a new SpendingInsight for an account.
func NewSpendingInsight(accountID uuid.UUID, insightType InsightType, message string, confidence float64) *SpendingInsight {
	return &SpendingInsight{
		ID:         uuid.New(),
		AccountID:  accountID,
		Type:       insightType,
		Message:    message,
		Confidence: confidence,
		CreatedAt:  time.Now().UTC(),
	}
}

// DayOfWeekSpending is the average expense amount per ISO weekday (1-7).
type DayOfWeekSpending map[int]float64

// AccountAnalysis is the full analytical report for one account: a pure
// function of the account's transaction window.
type AccountAnalysis struct {
	AccountID          uuid.UUID                  `json:"account_id"`
	AccountName        string                     `json:"account_name"`
	MonthlyVolumeTrend float64                    `json:"monthly_volume_trend"`
	TopMerchants       []string                   `json:"top_merchants"`
	MerchantMetrics    map[string]MerchantMetrics `json:"merchant_metrics"`
	EnvelopeMetrics    []EnvelopeMetrics          `json:"envelope_metrics"`
	DayOfWeekSpending  DayOfWeekSpending          `json:"day_of_week_spending"`
	Anomalies          []AnomalyDetection         `json:"anomalies"` // sorted by severity, descending
	Insights           []*SpendingInsight         `json:"insights"`
	SharedMerchants    []string                   `json:"shared_merchants,omitempty"` // merchants also seen on the user's other accounts
	AccountSimilarity  map[uuid.UUID]float64      `json:"account_similarity,omitempty"` // Jaccard overlap of merchant sets with the user's other accounts
}
