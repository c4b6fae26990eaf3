// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/envelofy/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for recording a
// transaction. EnvelopeConfirmed marks the envelope assignment as explicit
// user feedback, which drives pattern learning.
type CreateTransactionRequest struct {
	AccountID         string  `json:"account_id" binding:"required,uuid"`
	EnvelopeID        *string `json:"envelope_id,omitempty" binding:"omitempty,uuid"`
	Date              string  `json:"date" binding:"required"` // RFC 3339 or YYYY-MM-DD
	Description       string  `json:"description" binding:"required,min=1,max=255"`
	Amount            float64 `json:"amount" binding:"required,gt=0"`
	Type              string  `json:"type" binding:"required,oneof=expense income"`
	EnvelopeConfirmed bool    `json:"envelope_confirmed"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	EnvelopeID  *string   `json:"envelope_id,omitempty"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTransactionResponse represents the response for transaction
// recording, including what the learner did with the feedback.
type CreateTransactionResponse struct {
	Transaction        TransactionResponse `json:"transaction"`
	PatternsReinforced int                 `json:"patterns_reinforced"`
	PatternsCreated    int                 `json:"patterns_created"`
}

// ImportTransactionsResponse represents the response for a CSV import.
type ImportTransactionsResponse struct {
	ImportedCount    int                   `json:"imported_count"`
	CategorizedCount int                   `json:"categorized_count"`
	Transactions     []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain Transaction entity to a
// TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	var envelopeID *string
	if transaction.EnvelopeID != nil {
		id := transaction.EnvelopeID.String()
		envelopeID = &id
	}
	return TransactionResponse{
		ID:          transaction.ID.String(),
		AccountID:   transaction.AccountID.String(),
		EnvelopeID:  envelopeID,
		Date:        transaction.Date,
		Description: transaction.Description,
		Amount:      transaction.Amount.String(),
		Type:        string(transaction.Type),
		CreatedAt:   transaction.CreatedAt,
	}
}

// ToTransactionListResponses converts domain Transaction entities to
// TransactionResponse DTOs.
func ToTransactionListResponses(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		responses[i] = ToTransactionResponse(transaction)
	}
	return responses
}
