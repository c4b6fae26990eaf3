// Package analysis contains the account analysis, anomaly detection and
// insight generation use cases.
package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/config"
	"github.com/envelofy/backend/internal/domain/entity"
)

// averageMonthDays is the mean Gregorian month length used to convert
// inter-transaction gaps into a monthly frequency.
const averageMonthDays = 30.4

// topMerchantCount bounds the TopMerchants list in an account analysis.
const topMerchantCount = 5

// Analyzer computes per-account metrics, anomalies and insights from a
// transaction window. All methods are pure functions of their inputs, so the
// Analyzer is stateless and safe for concurrent use.
type Analyzer struct {
	cfg config.AnalysisConfig
}

// NewAnalyzer creates a new Analyzer with the given tuning thresholds.
func NewAnalyzer(cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// MerchantMetrics groups an account's expenses by exact description string
// and aggregates per-merchant statistics. Income is excluded throughout.
func (a *Analyzer) MerchantMetrics(transactions []*entity.Transaction) map[string]entity.MerchantMetrics {
	byMerchant := make(map[string][]*entity.Transaction)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		byMerchant[tx.Description] = append(byMerchant[tx.Description], tx)
	}

	metrics := make(map[string]entity.MerchantMetrics, len(byMerchant))
	for merchant, txs := range byMerchant {
		total := decimal.Zero
		for _, tx := range txs {
			total = total.Add(tx.Amount)
		}
		count := len(txs)
		avgGap := averageDaysBetween(txs)

		m := entity.MerchantMetrics{
			Merchant:           merchant,
			TotalSpent:         total,
			TransactionCount:   count,
			AverageAmount:      total.Div(decimal.NewFromInt(int64(count))),
			AverageDaysBetween: avgGap,
		}
		if avgGap > 0 {
			m.MonthlyFrequency = averageMonthDays / avgGap
		}
		metrics[merchant] = m
	}
	return metrics
}

// TopMerchants returns the biggest merchants by total spend, largest first.
func (a *Analyzer) TopMerchants(metrics map[string]entity.MerchantMetrics) []string {
	merchants := sortedMerchants(metrics)
	sort.SliceStable(merchants, func(i, j int) bool {
		return metrics[merchants[i]].TotalSpent.GreaterThan(metrics[merchants[j]].TotalSpent)
	})
	if len(merchants) > topMerchantCount {
		merchants = merchants[:topMerchantCount]
	}
	return merchants
}

// DayOfWeekSpending returns the average expense amount per ISO weekday.
// Weekdays with no expenses are absent from the map.
func (a *Analyzer) DayOfWeekSpending(transactions []*entity.Transaction) entity.DayOfWeekSpending {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		day := isoWeekday(tx.Date)
		amount, _ := tx.Amount.Float64()
		sums[day] += amount
		counts[day]++
	}

	averages := make(entity.DayOfWeekSpending, len(sums))
	for day, sum := range sums {
		averages[day] = sum / float64(counts[day])
	}
	return averages
}

// MonthlyVolumeTrend returns the normalized slope of the account's monthly
// expense totals. Positive means overall spend is growing.
func (a *Analyzer) MonthlyVolumeTrend(transactions []*entity.Transaction) float64 {
	return normalizedSlope(monthlyTotals(transactions))
}

// EnvelopeMetrics aggregates the account's categorized expenses per
// envelope. BudgetUtilization compares the most recent calendar month in the
// window against the envelope's monthly budget; SpendingTrend is the
// normalized slope of the envelope's monthly totals. Envelopes with no
// transactions in the window are omitted.
func (a *Analyzer) EnvelopeMetrics(transactions []*entity.Transaction, envelopes []*entity.Envelope) []entity.EnvelopeMetrics {
	byEnvelope := make(map[string][]*entity.Transaction)
	for _, tx := range transactions {
		if !tx.IsExpense() || tx.EnvelopeID == nil {
			continue
		}
		byEnvelope[tx.EnvelopeID.String()] = append(byEnvelope[tx.EnvelopeID.String()], tx)
	}

	var metrics []entity.EnvelopeMetrics
	for _, envelope := range envelopes {
		txs, ok := byEnvelope[envelope.ID.String()]
		if !ok {
			continue
		}

		total := decimal.Zero
		lastMonth := monthKey(latestDate(txs))
		lastMonthSpent := decimal.Zero
		for _, tx := range txs {
			total = total.Add(tx.Amount)
			if monthKey(tx.Date).Equal(lastMonth) {
				lastMonthSpent = lastMonthSpent.Add(tx.Amount)
			}
		}

		metrics = append(metrics, entity.EnvelopeMetrics{
			EnvelopeID:        envelope.ID,
			EnvelopeName:      envelope.Name,
			TotalSpent:        total,
			BudgetUtilization: envelope.BudgetUtilization(lastMonthSpent),
			SpendingTrend:     normalizedSlope(monthlyTotals(txs)),
		})
	}
	return metrics
}

// averageDaysBetween returns the mean gap in days between successive
// transactions, date ascending. Fewer than two transactions yield 0.
func averageDaysBetween(transactions []*entity.Transaction) float64 {
	if len(transactions) < 2 {
		return 0
	}
	dates := make([]time.Time, len(transactions))
	for i, tx := range transactions {
		dates[i] = tx.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var totalDays float64
	for i := 1; i < len(dates); i++ {
		totalDays += dates[i].Sub(dates[i-1]).Hours() / 24
	}
	return totalDays / float64(len(dates)-1)
}

func latestDate(transactions []*entity.Transaction) time.Time {
	var latest time.Time
	for _, tx := range transactions {
		if tx.Date.After(latest) {
			latest = tx.Date
		}
	}
	return latest
}

// isoWeekday maps Go's Sunday-based weekday to ISO-8601 numbering
// (Monday=1 .. Sunday=7).
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
