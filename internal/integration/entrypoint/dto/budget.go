// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/envelofy/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Type        string `json:"type" binding:"required,oneof=checking savings credit_card"`
	Institution string `json:"institution,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Institution string    `json:"institution,omitempty"`
	Balance     string    `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CreateEnvelopeRequest represents the request body for envelope creation.
type CreateEnvelopeRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	MonthlyBudget float64 `json:"monthly_budget"`
	CategoryID    *string `json:"category_id,omitempty"`
}

// EnvelopeResponse represents a single envelope in API responses.
type EnvelopeResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MonthlyBudget string    `json:"monthly_budget"`
	CategoryID    *string   `json:"category_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// EnvelopeListResponse represents the response for listing envelopes.
type EnvelopeListResponse struct {
	Envelopes []EnvelopeResponse `json:"envelopes"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID.String(),
		Name:        account.Name,
		Type:        string(account.Type),
		Institution: account.Institution,
		Balance:     account.Balance.String(),
		CreatedAt:   account.CreatedAt,
	}
}

// ToAccountListResponse converts domain Account entities to an AccountListResponse.
func ToAccountListResponse(accounts []*entity.Account) AccountListResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = ToAccountResponse(account)
	}
	return AccountListResponse{Accounts: responses}
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

// ToCategoryListResponse converts domain Category entities to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = ToCategoryResponse(category)
	}
	return CategoryListResponse{Categories: responses}
}

// ToEnvelopeResponse converts a domain Envelope entity to an EnvelopeResponse DTO.
func ToEnvelopeResponse(envelope *entity.Envelope) EnvelopeResponse {
	var categoryID *string
	if envelope.CategoryID != nil {
		id := envelope.CategoryID.String()
		categoryID = &id
	}
	return EnvelopeResponse{
		ID:            envelope.ID.String(),
		Name:          envelope.Name,
		MonthlyBudget: envelope.MonthlyBudget.String(),
		CategoryID:    categoryID,
		CreatedAt:     envelope.CreatedAt,
	}
}

// ToEnvelopeListResponse converts domain Envelope entities to an EnvelopeListResponse.
func ToEnvelopeListResponse(envelopes []*entity.Envelope) EnvelopeListResponse {
	responses := make([]EnvelopeResponse, len(envelopes))
	for i, envelope := range envelopes {
		responses[i] = ToEnvelopeResponse(envelope)
	}
	return EnvelopeListResponse{Envelopes: responses}
}
