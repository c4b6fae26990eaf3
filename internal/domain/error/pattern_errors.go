// Package error defines domain-specific errors for the Envelofy application.
package error

import "errors"

// Pattern domain errors.
var (
	// ErrPatternNotFound is returned when a pattern is not found in the system.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrPatternExists is returned when a pattern with the same value and kind
	// already exists for the category owner.
	ErrPatternExists = errors.New("pattern already exists")

	// ErrInvalidPatternKind is returned when the pattern kind is not one of
	// merchant, temporal or amount.
	ErrInvalidPatternKind = errors.New("invalid pattern kind")

	// ErrInvalidPatternValue is returned when the pattern value does not parse
	// for its kind (e.g. a malformed amount encoding).
	ErrInvalidPatternValue = errors.New("invalid pattern value")

	// ErrPatternMissingFields is returned when required fields are missing.
	ErrPatternMissingFields = errors.New("missing required fields")

	// ErrCategoryNotFound is returned when the referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrNotAuthorizedToModifyPattern is returned when the user does not own
	// the pattern's category.
	ErrNotAuthorizedToModifyPattern = errors.New("not authorized to modify pattern")
)

// PatternErrorCode defines error codes for pattern errors.
// Format: PTN-XXYYYY where XX is category and YYYY is specific error.
type PatternErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodePatternNotFound        PatternErrorCode = "PTN-010001"
	ErrCodePatternExists          PatternErrorCode = "PTN-010002"
	ErrCodeInvalidPatternKind     PatternErrorCode = "PTN-010003"
	ErrCodeInvalidPatternValue    PatternErrorCode = "PTN-010004"
	ErrCodeMissingPatternFields   PatternErrorCode = "PTN-010005"
	ErrCodeCategoryNotFound       PatternErrorCode = "PTN-010006"
	ErrCodeNotAuthorizedPattern   PatternErrorCode = "PTN-010007"
)

// PatternError represents a pattern error with code and message.
type PatternError struct {
	Code    PatternErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// NewPatternError creates a new PatternError with the given code and message.
func NewPatternError(code PatternErrorCode, message string, err error) *PatternError {
	return &PatternError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
