// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PatternKind represents what aspect of a transaction a pattern matches.
type PatternKind string

const (
	// PatternKindMerchant matches the transaction description text.
	PatternKindMerchant PatternKind = "merchant"
	// PatternKindTemporal matches the bimodal day/hour bucket of the date.
	PatternKindTemporal PatternKind = "temporal"
	// PatternKindAmount matches the exact transaction amount.
	PatternKindAmount PatternKind = "amount"
)

// Pattern is a learned classification rule: a value of one of the three
// kinds tied to a category, with accumulated match statistics. Patterns are
// created by the learner when feedback confirms a categorization that no
// existing pattern predicted, and reinforced every time they fire.
//
// Invariant: CorrectCount <= MatchCount.
type Pattern struct {
	ID           uuid.UUID
	Value        string
	Kind         PatternKind
	CategoryID   uuid.UUID
	MatchCount   int
	CorrectCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPattern creates a new Pattern entity with zero match statistics.
// Creation does not count as the pattern's first match.
func NewPattern(value string, kind PatternKind, categoryID uuid.UUID) *Pattern {
	now := time.Now().UTC()
	return &Pattern{
		ID:         uuid.New(),
		Value:      value,
		Kind:       kind,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Confidence returns CorrectCount/MatchCount. A pattern that has never
// fired has confidence 0, which keeps it below any positive minimum
// confidence threshold.
func (p *Pattern) Confidence() float64 {
	if p.MatchCount == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.MatchCount)
}

// MerchantPatternValue returns the merchant pattern encoding for a
// transaction description: the description lower-cased verbatim.
func MerchantPatternValue(description string) string {
	return strings.ToLower(description)
}

// TemporalPatternValue returns the bimodal temporal key for a date.
// Days at the start or end of the month (<=5 or >=25) encode as a
// day-of-month bucket, capturing monthly billing cycles; everything else
// encodes as an ISO day-of-week bucket, capturing weekly habits. The hour
// is part of the key in both modes.
func TemporalPatternValue(date time.Time) string {
	day := date.Day()
	if day <= 5 || day >= 25 {
		return fmt.Sprintf("DOM%d:%d", day, date.Hour())
	}
	return fmt.Sprintf("DOW%d:%d", isoWeekday(date), date.Hour())
}

// AmountPatternValue returns the exact-amount pattern encoding, "=" followed
// by the decimal amount.
func AmountPatternValue(amount decimal.Decimal) string {
	return "=" + amount.String()
}

// ParseAmountPatternValue parses an amount pattern value back into a
// decimal. It returns false when the value is not a well-formed "=<amount>"
// encoding.
func ParseAmountPatternValue(value string) (decimal.Decimal, bool) {
	rest, ok := strings.CutPrefix(value, "=")
	if !ok {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(rest)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
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
