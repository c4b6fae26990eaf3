// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/envelofy/backend/internal/application/usecase/transaction"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
	"github.com/envelofy/backend/internal/integration/entrypoint/dto"
	"github.com/envelofy/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	recordUseCase *transaction.RecordTransactionUseCase
	importUseCase *transaction.ImportTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	recordUseCase *transaction.RecordTransactionUseCase,
	importUseCase *transaction.ImportTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		recordUseCase: recordUseCase,
		importUseCase: importUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTxnFields),
		})
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	var envelopeID *uuid.UUID
	if req.EnvelopeID != nil {
		parsed, err := uuid.Parse(*req.EnvelopeID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid envelope ID format",
			})
			return
		}
		envelopeID = &parsed
	}

	date, err := parseFlexibleDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected RFC 3339 or YYYY-MM-DD",
		})
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), transaction.RecordTransactionInput{
		OwnerID:           userID,
		AccountID:         accountID,
		EnvelopeID:        envelopeID,
		Date:              date,
		Description:       req.Description,
		Amount:            decimal.NewFromFloat(req.Amount),
		Type:              entity.TransactionType(req.Type),
		EnvelopeConfirmed: req.EnvelopeConfirmed,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Transaction:        dto.ToTransactionResponse(output.Transaction),
		PatternsReinforced: output.PatternsReinforced,
		PatternsCreated:    output.PatternsCreated,
	})
}

// Import handles POST /transactions/import requests. The CSV comes as a
// multipart upload under the "file" field; accountId selects the target
// account.
func (c *TransactionController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, err := uuid.Parse(ctx.PostForm("accountId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID format",
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "CSV file is required",
			Code:  string(domainerror.ErrCodeEmptyCSV),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	output, err := c.importUseCase.Execute(ctx.Request.Context(), transaction.ImportTransactionsInput{
		OwnerID:   userID,
		AccountID: accountID,
		CSV:       file,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ImportTransactionsResponse{
		ImportedCount:    output.ImportedCount,
		CategorizedCount: output.CategorizedCount,
		Transactions:     dto.ToTransactionListResponses(output.Transactions),
	})
}

// handleTransactionError maps transaction errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.statusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) statusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeAccountNotFound,
		domainerror.ErrCodeEnvelopeNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingTxnFields,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidCSVRow,
		domainerror.ErrCodeEmptyCSV:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
