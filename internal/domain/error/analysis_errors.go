// Package error defines domain-specific errors for the Envelofy application.
package error

import "errors"

// Analysis domain errors.
var (
	// ErrAnalysisAccountNotFound is returned when analysis is requested for
	// an account the user does not own.
	ErrAnalysisAccountNotFound = errors.New("account not found for analysis")

	// ErrInsightNotFound is returned when a persisted insight is not found.
	ErrInsightNotFound = errors.New("insight not found")
)

// AnalysisErrorCode defines error codes for analysis errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalysisErrorCode string

const (
	ErrCodeAnalysisAccountNotFound AnalysisErrorCode = "ANL-010001"
	ErrCodeInsightNotFound         AnalysisErrorCode = "ANL-010002"
)

// AnalysisError represents an analysis error with code and message.
type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError with the given code and message.
func NewAnalysisError(code AnalysisErrorCode, message string, err error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
