// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/application/usecase/account"
	"github.com/envelofy/backend/internal/application/usecase/category"
	"github.com/envelofy/backend/internal/application/usecase/envelope"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
	"github.com/envelofy/backend/internal/integration/entrypoint/dto"
	"github.com/envelofy/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles the account, category and envelope endpoints that
// set up the budgeting structure transactions are classified into.
type BudgetController struct {
	createAccountUseCase  *account.CreateAccountUseCase
	listAccountsUseCase   *account.ListAccountsUseCase
	createCategoryUseCase *category.CreateCategoryUseCase
	listCategoriesUseCase *category.ListCategoriesUseCase
	createEnvelopeUseCase *envelope.CreateEnvelopeUseCase
	listEnvelopesUseCase  *envelope.ListEnvelopesUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createAccountUseCase *account.CreateAccountUseCase,
	listAccountsUseCase *account.ListAccountsUseCase,
	createCategoryUseCase *category.CreateCategoryUseCase,
	listCategoriesUseCase *category.ListCategoriesUseCase,
	createEnvelopeUseCase *envelope.CreateEnvelopeUseCase,
	listEnvelopesUseCase *envelope.ListEnvelopesUseCase,
) *BudgetController {
	return &BudgetController{
		createAccountUseCase:  createAccountUseCase,
		listAccountsUseCase:   listAccountsUseCase,
		createCategoryUseCase: createCategoryUseCase,
		listCategoriesUseCase: listCategoriesUseCase,
		createEnvelopeUseCase: createEnvelopeUseCase,
		listEnvelopesUseCase:  listEnvelopesUseCase,
	}
}

// CreateAccount handles POST /accounts requests.
func (c *BudgetController) CreateAccount(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.createAccountUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		Name:        req.Name,
		Type:        entity.AccountType(req.Type),
		Institution: req.Institution,
		OwnerID:     userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// ListAccounts handles GET /accounts requests.
func (c *BudgetController) ListAccounts(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listAccountsUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		OwnerID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve accounts",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output.Accounts))
}

// CreateCategory handles POST /categories requests.
func (c *BudgetController) CreateCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.createCategoryUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// ListCategories handles GET /categories requests.
func (c *BudgetController) ListCategories(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listCategoriesUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		OwnerID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve categories",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// CreateEnvelope handles POST /envelopes requests.
func (c *BudgetController) CreateEnvelope(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateEnvelopeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		parsed, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		categoryID = &parsed
	}

	output, err := c.createEnvelopeUseCase.Execute(ctx.Request.Context(), envelope.CreateEnvelopeInput{
		Name:          req.Name,
		MonthlyBudget: decimal.NewFromFloat(req.MonthlyBudget),
		CategoryID:    categoryID,
		OwnerID:       userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToEnvelopeResponse(output.Envelope))
}

// ListEnvelopes handles GET /envelopes requests.
func (c *BudgetController) ListEnvelopes(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listEnvelopesUseCase.Execute(ctx.Request.Context(), envelope.ListEnvelopesInput{
		OwnerID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve envelopes",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEnvelopeListResponse(output.Envelopes))
}

// handleBudgetError maps budget errors to HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(c.statusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForBudgetError maps budget error codes to HTTP status codes.
func (c *BudgetController) statusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeEnvelopeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNameRequired,
		domainerror.ErrCodeInvalidAccountType,
		domainerror.ErrCodeNegativeBudget:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the standard missing-authentication response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
