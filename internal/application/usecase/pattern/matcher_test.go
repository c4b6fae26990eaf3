package pattern

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/domain/entity"
)

func expenseAt(date time.Time, description string, amount string) *entity.Transaction {
	return entity.NewTransaction(
		uuid.New(),
		nil,
		date,
		description,
		decimal.RequireFromString(amount),
		entity.TransactionTypeExpense,
	)
}

func TestMatcherMerchant(t *testing.T) {
	matcher := NewMatcher()
	categoryID := uuid.New()

	tests := []struct {
		name        string
		value       string
		description string
		want        bool
	}{
		{"exact description", "coffee shop", "Coffee Shop", true},
		{"fragment inside longer description", "coffee shop", "COFFEE SHOP #42 DOWNTOWN", true},
		{"case insensitive both ways", "CoFfEe ShOp", "coffee shop downtown", true},
		{"description shorter than value", "coffee shop downtown", "Coffee Shop", false},
		{"unrelated description", "coffee shop", "Gas Station", false},
		{"empty value matches everything", "", "anything at all", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := entity.NewPattern(tt.value, entity.PatternKindMerchant, categoryID)
			tx := expenseAt(time.Now(), tt.description, "10.00")
			if got := matcher.Applies(p, tx); got != tt.want {
				t.Errorf("Applies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcherTemporal(t *testing.T) {
	matcher := NewMatcher()
	categoryID := uuid.New()

	// 2026-01-02 is a Friday, day 2 -> month-boundary bucket.
	monthStart := time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)
	// 2026-01-14 is a Wednesday, day 14 -> weekday bucket.
	midMonth := time.Date(2026, time.January, 14, 9, 0, 0, 0, time.UTC)
	// 2026-01-11 is a Sunday, which maps to ISO weekday 7.
	sunday := time.Date(2026, time.January, 11, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		date  time.Time
		want  bool
	}{
		{"month start same day and hour", "DOM2:9", monthStart, true},
		{"month start different hour", "DOM2:10", monthStart, false},
		{"mid month weekday and hour", "DOW3:9", midMonth, true},
		{"mid month wrong weekday", "DOW4:9", midMonth, false},
		{"sunday is iso weekday seven", "DOW7:20", sunday, true},
		{"bucket mode mismatch", "DOW5:9", monthStart, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := entity.NewPattern(tt.value, entity.PatternKindTemporal, categoryID)
			tx := expenseAt(tt.date, "whatever", "10.00")
			if got := matcher.Applies(p, tx); got != tt.want {
				t.Errorf("Applies() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("derived value round trips", func(t *testing.T) {
		for _, date := range []time.Time{monthStart, midMonth, sunday} {
			p := entity.NewPattern(entity.TemporalPatternValue(date), entity.PatternKindTemporal, categoryID)
			if !matcher.Applies(p, expenseAt(date, "x", "1")) {
				t.Errorf("pattern derived from %v does not match its own date", date)
			}
		}
	})
}

func TestMatcherAmount(t *testing.T) {
	matcher := NewMatcher()
	categoryID := uuid.New()

	tests := []struct {
		name   string
		value  string
		amount string
		want   bool
	}{
		{"exact match", "=4.50", "4.50", true},
		{"trailing zero still equal", "=4.5", "4.50", true},
		{"off by a cent", "=4.50", "4.51", false},
		{"malformed value never matches", "4.50", "4.50", false},
		{"non numeric value never matches", "=abc", "4.50", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := entity.NewPattern(tt.value, entity.PatternKindAmount, categoryID)
			tx := expenseAt(time.Now(), "x", tt.amount)
			if got := matcher.Applies(p, tx); got != tt.want {
				t.Errorf("Applies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcherUnknownKind(t *testing.T) {
	matcher := NewMatcher()
	p := entity.NewPattern("x", entity.PatternKind("bogus"), uuid.New())
	if matcher.Applies(p, expenseAt(time.Now(), "x", "1")) {
		t.Error("unknown pattern kind must never match")
	}
}

func TestPatternConfidence(t *testing.T) {
	p := entity.NewPattern("coffee shop", entity.PatternKindMerchant, uuid.New())

	if got := p.Confidence(); got != 0 {
		t.Errorf("fresh pattern confidence = %v, want 0", got)
	}

	p.MatchCount = 10
	p.CorrectCount = 9
	if got := p.Confidence(); got != 0.9 {
		t.Errorf("Confidence() = %v, want 0.9", got)
	}
}
