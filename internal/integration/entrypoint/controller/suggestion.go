// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/application/usecase/pattern"
	"github.com/envelofy/backend/internal/domain/entity"
	"github.com/envelofy/backend/internal/integration/entrypoint/dto"
	"github.com/envelofy/backend/internal/integration/entrypoint/middleware"
)

// SuggestionController handles envelope suggestion endpoints.
type SuggestionController struct {
	suggestUseCase *pattern.SuggestEnvelopesUseCase
}

// NewSuggestionController creates a new suggestion controller instance.
func NewSuggestionController(suggestUseCase *pattern.SuggestEnvelopesUseCase) *SuggestionController {
	return &SuggestionController{
		suggestUseCase: suggestUseCase,
	}
}

// Suggest handles POST /suggestions requests. The body describes a
// prospective transaction; the response ranks the user's envelopes without
// persisting anything or touching pattern statistics.
func (c *SuggestionController) Suggest(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.SuggestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	date, err := parseFlexibleDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected RFC 3339 or YYYY-MM-DD",
		})
		return
	}

	transaction := &entity.Transaction{
		Date:        date,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Type:        entity.TransactionTypeExpense,
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), pattern.SuggestEnvelopesInput{
		OwnerID:     userID,
		Transaction: transaction,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to build suggestions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestionResponse(output.Suggestions))
}

// parseFlexibleDate accepts either a full RFC 3339 timestamp or a bare
// calendar date.
func parseFlexibleDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
