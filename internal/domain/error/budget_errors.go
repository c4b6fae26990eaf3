// Package error defines domain-specific errors for the Envelofy application.
package error

import "errors"

// Budget-plan domain errors, shared by the account, category and envelope
// use cases.
var (
	// ErrNameRequired is returned when a name is missing or too long.
	ErrNameRequired = errors.New("name is required")

	// ErrInvalidAccountType is returned when the account type is not one of
	// checking, savings or credit_card.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrNegativeBudget is returned when an envelope budget is negative.
	ErrNegativeBudget = errors.New("monthly budget must not be negative")

	// ErrEnvelopeCategoryNotFound is returned when the category an envelope
	// links to does not exist or belongs to another user.
	ErrEnvelopeCategoryNotFound = errors.New("linked category not found")
)

// BudgetErrorCode defines error codes for budget-plan errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	ErrCodeNameRequired             BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidAccountType       BudgetErrorCode = "BGT-010002"
	ErrCodeNegativeBudget           BudgetErrorCode = "BGT-010003"
	ErrCodeEnvelopeCategoryNotFound BudgetErrorCode = "BGT-010004"
)

// BudgetError represents a budget-plan error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
