// Package pattern contains the pattern matching, classification and
// learning use cases.
package pattern

import (
	"strings"

	"github.com/envelofy/backend/internal/domain/entity"
)

// Matcher decides whether a learned pattern applies to a transaction.
// It is stateless and safe for concurrent use.
type Matcher struct{}

// NewMatcher creates a new Matcher instance.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Applies reports whether the pattern fires for the transaction.
//
// Merchant patterns match when the stored pattern value is contained in the
// transaction description, case-insensitively. The value was the full
// lower-cased description at creation time, so containment in this
// direction lets patterns shortened to a merchant-name fragment keep
// matching variant descriptions.
//
// Temporal patterns match when the transaction date derives the exact same
// bimodal key the pattern was created from, hour included.
//
// Amount patterns match on exact decimal equality, no tolerance band.
func (m *Matcher) Applies(p *entity.Pattern, tx *entity.Transaction) bool {
	switch p.Kind {
	case entity.PatternKindMerchant:
		return strings.Contains(strings.ToLower(tx.Description), strings.ToLower(p.Value))
	case entity.PatternKindTemporal:
		return entity.TemporalPatternValue(tx.Date) == p.Value
	case entity.PatternKindAmount:
		want, ok := entity.ParseAmountPatternValue(p.Value)
		return ok && tx.Amount.Equal(want)
	default:
		return false
	}
}
