// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/usecase/analysis"
	domainerror "github.com/envelofy/backend/internal/domain/error"
	"github.com/envelofy/backend/internal/integration/entrypoint/dto"
	"github.com/envelofy/backend/internal/integration/entrypoint/middleware"
)

// AnalysisController handles account analysis and insight endpoints.
type AnalysisController struct {
	analyzeUseCase      *analysis.AnalyzeAccountsUseCase
	listInsightsUseCase *analysis.ListInsightsUseCase
}

// NewAnalysisController creates a new analysis controller instance.
func NewAnalysisController(
	analyzeUseCase *analysis.AnalyzeAccountsUseCase,
	listInsightsUseCase *analysis.ListInsightsUseCase,
) *AnalysisController {
	return &AnalysisController{
		analyzeUseCase:      analyzeUseCase,
		listInsightsUseCase: listInsightsUseCase,
	}
}

// Analyze handles GET /analysis requests. It returns the full analytical
// report for every account the user owns, served from cache when fresh.
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), analysis.AnalyzeAccountsInput{
		OwnerID: userID,
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AnalysisListResponse{Analyses: output.Analyses})
}

// ListInsights handles GET /insights requests. An optional accountId query
// parameter narrows the listing to one account.
func (c *AnalysisController) ListInsights(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := analysis.ListInsightsInput{OwnerID: userID}

	if accountIDStr := ctx.Query("accountId"); accountIDStr != "" {
		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid account ID format",
			})
			return
		}
		input.AccountID = &accountID
	}

	output, err := c.listInsightsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightListResponse(output.Insights))
}

// handleAnalysisError maps analysis errors to HTTP responses.
func (c *AnalysisController) handleAnalysisError(ctx *gin.Context, err error) {
	var analysisErr *domainerror.AnalysisError
	if errors.As(err, &analysisErr) {
		statusCode := http.StatusInternalServerError
		switch analysisErr.Code {
		case domainerror.ErrCodeAnalysisAccountNotFound, domainerror.ErrCodeInsightNotFound:
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: analysisErr.Message,
			Code:  string(analysisErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
