// Package pattern contains the pattern matching, classification and
// learning use cases.
package pattern

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/domain/entity"
)

// DefaultMinConfidence is the minimum pattern confidence considered when
// building suggestions, used when no override is configured.
const DefaultMinConfidence = 0.3

// SuggestEnvelopesInput represents the input for envelope suggestion. The
// transaction does not need to be persisted; classification is a pure read.
type SuggestEnvelopesInput struct {
	OwnerID     uuid.UUID
	Transaction *entity.Transaction
}

// SuggestEnvelopesOutput represents the output of envelope suggestion.
// Suggestions maps envelope IDs to normalized scores summing to 1.0 across
// all suggested envelopes. An empty map means no confident suggestion,
// which is a valid outcome, not a failure.
type SuggestEnvelopesOutput struct {
	Suggestions map[uuid.UUID]float64
}

// SuggestEnvelopesUseCase ranks the user's envelopes for a transaction by
// aggregating the confidences of every applicable learned pattern.
type SuggestEnvelopesUseCase struct {
	patternRepo   adapter.PatternRepository
	categoryRepo  adapter.CategoryRepository
	envelopeRepo  adapter.EnvelopeRepository
	matcher       *Matcher
	minConfidence float64
}

// NewSuggestEnvelopesUseCase creates a new SuggestEnvelopesUseCase instance.
// A non-positive minConfidence falls back to DefaultMinConfidence.
func NewSuggestEnvelopesUseCase(
	patternRepo adapter.PatternRepository,
	categoryRepo adapter.CategoryRepository,
	envelopeRepo adapter.EnvelopeRepository,
	matcher *Matcher,
	minConfidence float64,
) *SuggestEnvelopesUseCase {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &SuggestEnvelopesUseCase{
		patternRepo:   patternRepo,
		categoryRepo:  categoryRepo,
		envelopeRepo:  envelopeRepo,
		matcher:       matcher,
		minConfidence: minConfidence,
	}
}

// Execute computes envelope suggestions for the transaction. Multiple
// applicable patterns for one category compound: their confidences are
// summed before normalization.
func (uc *SuggestEnvelopesUseCase) Execute(ctx context.Context, input SuggestEnvelopesInput) (*SuggestEnvelopesOutput, error) {
	patterns, err := uc.patternRepo.FindConfidentByOwner(ctx, input.OwnerID, uc.minConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to load confident patterns: %w", err)
	}

	categoryScores := make(map[uuid.UUID]float64)
	for _, p := range patterns {
		if uc.matcher.Applies(p, input.Transaction) {
			categoryScores[p.CategoryID] += p.Confidence()
		}
	}

	suggestions := make(map[uuid.UUID]float64)
	if len(categoryScores) == 0 {
		return &SuggestEnvelopesOutput{Suggestions: suggestions}, nil
	}

	var total float64
	for _, score := range categoryScores {
		total += score
	}
	if total <= 0 {
		return &SuggestEnvelopesOutput{Suggestions: suggestions}, nil
	}
	for id, score := range categoryScores {
		categoryScores[id] = score / total
	}

	categories, err := uc.categoryRepo.FindByIDs(ctx, sortedKeys(categoryScores))
	if err != nil {
		return nil, fmt.Errorf("failed to load scored categories: %w", err)
	}
	envelopes, err := uc.envelopeRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load envelopes: %w", err)
	}

	// Categories in ID order so repeated calls distribute scores identically.
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID.String() < categories[j].ID.String()
	})
	for _, category := range categories {
		envelope := matchEnvelopeForCategory(category, envelopes)
		if envelope == nil {
			continue
		}
		// Two categories can land on the same envelope; their scores compound.
		suggestions[envelope.ID] += categoryScores[category.ID]
	}

	return &SuggestEnvelopesOutput{Suggestions: suggestions}, nil
}

// matchEnvelopeForCategory maps a category to its target envelope by
// case-insensitive substring match of the category name inside the envelope
// name, taking the first hit in envelope-ID order. This name matching stands
// in for an explicit category-envelope mapping and is kept isolated here so
// it can be replaced without touching the score aggregation.
func matchEnvelopeForCategory(category *entity.Category, envelopes []*entity.Envelope) *entity.Envelope {
	want := strings.ToLower(category.Name)
	for _, envelope := range envelopes {
		if strings.Contains(strings.ToLower(envelope.Name), want) {
			return envelope
		}
	}
	return nil
}

func sortedKeys(m map[uuid.UUID]float64) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
