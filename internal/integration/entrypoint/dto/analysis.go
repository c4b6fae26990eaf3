// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/envelofy/backend/internal/domain/entity"
)

// AnalysisListResponse represents the response for account analysis. The
// analysis entities carry their own JSON shape; the wrapper only adds the
// envelope around the list.
type AnalysisListResponse struct {
	Analyses []*entity.AccountAnalysis `json:"analyses"`
}

// InsightResponse represents a single persisted insight in API responses.
type InsightResponse struct {
	ID                    string    `json:"id"`
	AccountID             string    `json:"account_id"`
	Type                  string    `json:"type"`
	Message               string    `json:"message"`
	Confidence            float64   `json:"confidence"`
	RelatedTransactionIDs []string  `json:"related_transaction_ids,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// InsightListResponse represents the response for listing insights.
type InsightListResponse struct {
	Insights []InsightResponse `json:"insights"`
}

// ToInsightResponse converts a domain SpendingInsight entity to an
// InsightResponse DTO.
func ToInsightResponse(insight *entity.SpendingInsight) InsightResponse {
	var related []string
	for _, id := range insight.RelatedTransactionIDs {
		related = append(related, id.String())
	}
	return InsightResponse{
		ID:                    insight.ID.String(),
		AccountID:             insight.AccountID.String(),
		Type:                  string(insight.Type),
		Message:               insight.Message,
		Confidence:            insight.Confidence,
		RelatedTransactionIDs: related,
		CreatedAt:             insight.CreatedAt,
	}
}

// ToInsightListResponse converts domain SpendingInsight entities to an
// InsightListResponse.
func ToInsightListResponse(insights []*entity.SpendingInsight) InsightListResponse {
	responses := make([]InsightResponse, len(insights))
	for i, insight := range insights {
		responses[i] = ToInsightResponse(insight)
	}
	return InsightListResponse{Insights: responses}
}
