// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/google/uuid"
)

// SuggestionRequest represents the request body for envelope suggestions.
// It describes a prospective transaction; nothing is persisted.
type SuggestionRequest struct {
	Date        string  `json:"date" binding:"required"` // RFC 3339 or YYYY-MM-DD
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

// SuggestionResponse represents the envelope suggestions for a transaction.
// Scores are normalized across the suggested envelopes and sum to 1.0; an
// empty map means no envelope reached the confidence floor.
type SuggestionResponse struct {
	Suggestions map[string]float64 `json:"suggestions"`
}

// ToSuggestionResponse converts a suggestion score map keyed by envelope ID
// to a SuggestionResponse DTO.
func ToSuggestionResponse(scores map[uuid.UUID]float64) SuggestionResponse {
	suggestions := make(map[string]float64, len(scores))
	for envelopeID, score := range scores {
		suggestions[envelopeID.String()] = score
	}
	return SuggestionResponse{Suggestions: suggestions}
}
