// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/envelofy/backend/internal/domain/entity"
)

// CreatePatternRequest represents the request body for manual pattern creation.
type CreatePatternRequest struct {
	Value      string `json:"value" binding:"required,min=1,max=255"`
	Kind       string `json:"kind" binding:"required,oneof=merchant temporal amount"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// PatternResponse represents a single pattern in API responses.
type PatternResponse struct {
	ID           string    `json:"id"`
	Value        string    `json:"value"`
	Kind         string    `json:"kind"`
	CategoryID   string    `json:"category_id"`
	MatchCount   int       `json:"match_count"`
	CorrectCount int       `json:"correct_count"`
	Confidence   float64   `json:"confidence"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PatternListResponse represents the response for listing patterns.
type PatternListResponse struct {
	Patterns []PatternResponse `json:"patterns"`
}

// ToPatternResponse converts a domain Pattern entity to a PatternResponse DTO.
func ToPatternResponse(pattern *entity.Pattern) PatternResponse {
	return PatternResponse{
		ID:           pattern.ID.String(),
		Value:        pattern.Value,
		Kind:         string(pattern.Kind),
		CategoryID:   pattern.CategoryID.String(),
		MatchCount:   pattern.MatchCount,
		CorrectCount: pattern.CorrectCount,
		Confidence:   pattern.Confidence(),
		CreatedAt:    pattern.CreatedAt,
		UpdatedAt:    pattern.UpdatedAt,
	}
}

// ToPatternListResponse converts domain Pattern entities to a PatternListResponse.
func ToPatternListResponse(patterns []*entity.Pattern) PatternListResponse {
	responses := make([]PatternResponse, len(patterns))
	for i, pattern := range patterns {
		responses[i] = ToPatternResponse(pattern)
	}
	return PatternListResponse{Patterns: responses}
}
