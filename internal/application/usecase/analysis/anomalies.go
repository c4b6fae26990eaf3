// Package analysis contains the account analysis, anomaly detection and
// insight generation use cases.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/envelofy/backend/internal/domain/entity"
)

// minAnomalyHistory is the smallest merchant history an anomaly can be
// judged against. Below this, every statistic is noise.
const minAnomalyHistory = 3

// DetectAnomalies scans an account's transaction window for statistically
// unusual behavior, per merchant. now anchors the frequency check: the gap
// since a merchant's last transaction is measured against it. The result is
// sorted by severity descending, ties broken by merchant name.
func (a *Analyzer) DetectAnomalies(transactions []*entity.Transaction, now time.Time) []entity.AnomalyDetection {
	byMerchant := make(map[string][]*entity.Transaction)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		byMerchant[tx.Description] = append(byMerchant[tx.Description], tx)
	}

	var anomalies []entity.AnomalyDetection
	for merchant, txs := range byMerchant {
		if len(txs) < minAnomalyHistory {
			continue
		}
		anomalies = append(anomalies, a.amountAnomalies(merchant, txs)...)
		if anomaly, ok := a.frequencyAnomaly(merchant, txs, now); ok {
			anomalies = append(anomalies, anomaly)
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		if anomalies[i].Severity != anomalies[j].Severity {
			return anomalies[i].Severity > anomalies[j].Severity
		}
		return anomalies[i].Merchant < anomalies[j].Merchant
	})
	return anomalies
}

// amountAnomalies flags transactions whose amount deviates from the
// merchant's mean by more than the configured multiple of the standard
// deviation. Severity is the z-score capped at MaxAnomalySeverity.
func (a *Analyzer) amountAnomalies(merchant string, txs []*entity.Transaction) []entity.AnomalyDetection {
	amounts := make([]float64, len(txs))
	var sum float64
	for i, tx := range txs {
		amounts[i], _ = tx.Amount.Float64()
		sum += amounts[i]
	}
	mean := sum / float64(len(amounts))

	var variance float64
	for _, amount := range amounts {
		variance += (amount - mean) * (amount - mean)
	}
	stddev := math.Sqrt(variance / float64(len(amounts)))
	if stddev == 0 {
		return nil
	}

	var anomalies []entity.AnomalyDetection
	for i, tx := range txs {
		// Threshold is inclusive: a charge sitting exactly at the configured
		// multiple is already unusual.
		z := math.Abs(amounts[i]-mean) / stddev
		if z < a.cfg.AmountSigma {
			continue
		}
		id := tx.ID
		anomalies = append(anomalies, entity.AnomalyDetection{
			Type:          entity.AnomalyTypeAmount,
			TransactionID: &id,
			Merchant:      merchant,
			Description: fmt.Sprintf("Charge of %s at %s is far from the usual %.2f",
				tx.Amount.StringFixed(2), merchant, mean),
			Severity: math.Min(z, entity.MaxAnomalySeverity),
		})
	}
	return anomalies
}

// frequencyAnomaly flags a merchant whose gap since its last transaction
// deviates from its historical average by more than the configured fraction,
// signalling a skipped or unexpectedly early recurring charge. Severity is
// the relative deviation capped at MaxAnomalySeverity.
func (a *Analyzer) frequencyAnomaly(merchant string, txs []*entity.Transaction, now time.Time) (entity.AnomalyDetection, bool) {
	avgGap := averageDaysBetween(txs)
	if avgGap <= 0 {
		return entity.AnomalyDetection{}, false
	}

	recentGap := now.Sub(latestDate(txs)).Hours() / 24
	if recentGap < 0 {
		recentGap = 0
	}
	deviation := math.Abs(recentGap-avgGap) / avgGap
	if deviation <= a.cfg.GapDeviation {
		return entity.AnomalyDetection{}, false
	}

	verb := "overdue"
	if recentGap < avgGap {
		verb = "earlier than usual"
	}
	return entity.AnomalyDetection{
		Type:     entity.AnomalyTypeFrequency,
		Merchant: merchant,
		Description: fmt.Sprintf("%s usually charges every %.0f days but is %s (%.0f days since last charge)",
			merchant, avgGap, verb, recentGap),
		Severity: math.Min(deviation, entity.MaxAnomalySeverity),
	}, true
}
