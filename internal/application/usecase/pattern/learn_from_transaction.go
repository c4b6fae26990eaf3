// Package pattern contains the pattern matching, classification and
// learning use cases.
package pattern

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// LearnFromTransactionInput represents the feedback signal for the learner.
// WasCorrect is true when the caller confirmed (explicitly or by silent
// acceptance) that the transaction's envelope assignment was right.
type LearnFromTransactionInput struct {
	OwnerID     uuid.UUID
	Transaction *entity.Transaction
	WasCorrect  bool
}

// LearnFromTransactionOutput reports what the learner did.
type LearnFromTransactionOutput struct {
	PatternsReinforced int
	PatternsCreated    int
}

// LearnFromTransactionUseCase is the feedback loop of the classifier.
// Every pattern that applies to the transaction gets its match counter
// bumped, and its correct counter too when the feedback was positive —
// patterns are reinforced even when they predicted a different category,
// which keeps their statistics honest. When nothing fired and the feedback
// was positive, three new patterns (merchant, temporal, amount) are
// synthesized from the transaction.
type LearnFromTransactionUseCase struct {
	patternRepo  adapter.PatternRepository
	envelopeRepo adapter.EnvelopeRepository

	matcher *Matcher

	// Writes for one user are serialized so concurrent feedback cannot
	// lose counter updates or double-create synthesized patterns.
	// Different users never contend.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewLearnFromTransactionUseCase creates a new LearnFromTransactionUseCase instance.
func NewLearnFromTransactionUseCase(
	patternRepo adapter.PatternRepository,
	envelopeRepo adapter.EnvelopeRepository,
	matcher *Matcher,
) *LearnFromTransactionUseCase {
	return &LearnFromTransactionUseCase{
		patternRepo:  patternRepo,
		envelopeRepo: envelopeRepo,
		matcher:      matcher,
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// Execute applies the feedback signal. Only infrastructure failures on the
// reinforcement path surface as errors; pattern synthesis is best-effort
// and never fails the caller's recording flow.
func (uc *LearnFromTransactionUseCase) Execute(ctx context.Context, input LearnFromTransactionInput) (*LearnFromTransactionOutput, error) {
	lock := uc.userLock(input.OwnerID)
	lock.Lock()
	defer lock.Unlock()

	// Every known pattern is a reinforcement candidate, not just the
	// confident ones the classifier consults.
	patterns, err := uc.patternRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}

	var matched []uuid.UUID
	for _, p := range patterns {
		if uc.matcher.Applies(p, input.Transaction) {
			matched = append(matched, p.ID)
		}
	}

	output := &LearnFromTransactionOutput{}
	if len(matched) > 0 {
		correct := matched
		if !input.WasCorrect {
			correct = nil
		}
		if err := uc.patternRepo.IncrementCounters(ctx, matched, correct); err != nil {
			return nil, fmt.Errorf("failed to reinforce patterns: %w", err)
		}
		output.PatternsReinforced = len(matched)
		return output, nil
	}

	if input.WasCorrect {
		output.PatternsCreated = uc.synthesizePatterns(ctx, input.Transaction)
	}
	return output, nil
}

// synthesizePatterns derives merchant, temporal and amount patterns from a
// confirmed transaction. Each new pattern starts with zero counters:
// creation does not count as a match. Duplicates and other creation
// failures are logged and skipped.
func (uc *LearnFromTransactionUseCase) synthesizePatterns(ctx context.Context, tx *entity.Transaction) int {
	categoryID, ok := uc.categoryForTransaction(ctx, tx)
	if !ok {
		return 0
	}

	values := map[entity.PatternKind]string{
		entity.PatternKindMerchant: entity.MerchantPatternValue(tx.Description),
		entity.PatternKindTemporal: entity.TemporalPatternValue(tx.Date),
		entity.PatternKindAmount:   entity.AmountPatternValue(tx.Amount),
	}

	created := 0
	for kind, value := range values {
		p := entity.NewPattern(value, kind, categoryID)
		err := uc.patternRepo.Create(ctx, p)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domainerror.ErrPatternExists):
			// Already learned, nothing to do.
		default:
			slog.Warn("Failed to create pattern from transaction",
				"kind", kind,
				"category_id", categoryID,
				"error", err,
			)
		}
	}
	return created
}

// categoryForTransaction resolves the category new patterns should attach
// to, through the transaction's envelope.
func (uc *LearnFromTransactionUseCase) categoryForTransaction(ctx context.Context, tx *entity.Transaction) (uuid.UUID, bool) {
	if tx.EnvelopeID == nil {
		return uuid.Nil, false
	}
	envelope, err := uc.envelopeRepo.FindByID(ctx, *tx.EnvelopeID)
	if err != nil {
		slog.Warn("Failed to load envelope for pattern synthesis",
			"envelope_id", *tx.EnvelopeID,
			"error", err,
		)
		return uuid.Nil, false
	}
	if envelope.CategoryID == nil {
		slog.Warn("No category linked to envelope, skipping pattern synthesis",
			"envelope", envelope.Name,
		)
		return uuid.Nil, false
	}
	return *envelope.CategoryID, true
}

// userLock returns the serialization lock for one user, creating it on
// first use.
func (uc *LearnFromTransactionUseCase) userLock(ownerID uuid.UUID) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	lock, ok := uc.locks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[ownerID] = lock
	}
	return lock
}
