// Package analysis contains the account analysis, anomaly detection and
// insight generation use cases.
package analysis

import (
	"sort"
	"time"

	"github.com/envelofy/backend/internal/domain/entity"
)

// monthKey buckets a date into its calendar month.
func monthKey(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthlyTotals sums expense amounts per calendar month, returned in
// chronological order. Months without transactions inside the observed span
// contribute a zero, so a burst followed by silence reads as a decline.
func monthlyTotals(transactions []*entity.Transaction) []float64 {
	totals := make(map[time.Time]float64)
	var first, last time.Time
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		key := monthKey(tx.Date)
		amount, _ := tx.Amount.Float64()
		totals[key] += amount
		if first.IsZero() || key.Before(first) {
			first = key
		}
		if last.IsZero() || key.After(last) {
			last = key
		}
	}
	if len(totals) == 0 {
		return nil
	}

	var out []float64
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, totals[m])
	}
	return out
}

// normalizedSlope fits a least-squares line through the series and divides
// the slope by the series mean, yielding a unitless per-period growth rate:
// positive means increasing spend. Fewer than two points, or an all-zero
// series, yield 0.
func normalizedSlope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	slope := (n*sumXY - sumX*sumY) / denominator

	mean := sumY / n
	if mean == 0 {
		return 0
	}
	return slope / mean
}

// sortedMerchants returns map keys in lexical order for deterministic output.
func sortedMerchants(metrics map[string]entity.MerchantMetrics) []string {
	merchants := make([]string, 0, len(metrics))
	for m := range metrics {
		merchants = append(merchants, m)
	}
	sort.Strings(merchants)
	return merchants
}
