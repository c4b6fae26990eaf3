// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/application/usecase/pattern"
	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
	"github.com/envelofy/backend/internal/integration/entrypoint/dto"
	"github.com/envelofy/backend/internal/integration/entrypoint/middleware"
)

// PatternController handles learned-pattern endpoints.
type PatternController struct {
	createUseCase *pattern.CreatePatternUseCase
	listUseCase   *pattern.ListPatternsUseCase
	deleteUseCase *pattern.DeletePatternUseCase
}

// NewPatternController creates a new pattern controller instance.
func NewPatternController(
	createUseCase *pattern.CreatePatternUseCase,
	listUseCase *pattern.ListPatternsUseCase,
	deleteUseCase *pattern.DeletePatternUseCase,
) *PatternController {
	return &PatternController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /patterns requests. Optional categoryId and kind query
// parameters narrow the listing.
func (c *PatternController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := pattern.ListPatternsInput{OwnerID: userID}

	if categoryIDStr := ctx.Query("categoryId"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}

	if kindStr := ctx.Query("kind"); kindStr != "" {
		kind := entity.PatternKind(kindStr)
		input.Kind = &kind
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPatternListResponse(output.Patterns))
}

// Create handles POST /patterns requests.
func (c *PatternController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreatePatternRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPatternFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), pattern.CreatePatternInput{
		Value:      req.Value,
		Kind:       entity.PatternKind(req.Kind),
		CategoryID: categoryID,
		OwnerID:    userID,
	})
	if err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPatternResponse(output.Pattern))
}

// Delete handles DELETE /patterns/:id requests.
func (c *PatternController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	patternID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid pattern ID format",
		})
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), pattern.DeletePatternInput{
		PatternID: patternID,
		OwnerID:   userID,
	})
	if err != nil {
		c.handlePatternError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handlePatternError maps pattern errors to HTTP responses.
func (c *PatternController) handlePatternError(ctx *gin.Context, err error) {
	var patternErr *domainerror.PatternError
	if errors.As(err, &patternErr) {
		ctx.JSON(c.statusCodeForPatternError(patternErr.Code), dto.ErrorResponse{
			Error: patternErr.Message,
			Code:  string(patternErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForPatternError maps pattern error codes to HTTP status codes.
func (c *PatternController) statusCodeForPatternError(code domainerror.PatternErrorCode) int {
	switch code {
	case domainerror.ErrCodePatternNotFound, domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodePatternExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedPattern:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidPatternKind,
		domainerror.ErrCodeInvalidPatternValue,
		domainerror.ErrCodeMissingPatternFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
