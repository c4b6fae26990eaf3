// Package error defines domain-specific errors for the Envelofy application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionMissingFields is returned when required fields are missing.
	ErrTransactionMissingFields = errors.New("missing required fields")

	// ErrInvalidAmount is returned when the amount is zero or negative.
	// Amounts are always positive magnitudes; direction comes from the type.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidTransactionType is returned when the type is neither expense
	// nor income.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrAccountNotFound is returned when the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEnvelopeNotFound is returned when the referenced envelope does not exist.
	ErrEnvelopeNotFound = errors.New("envelope not found")

	// ErrInvalidCSVRow is returned when a CSV import row cannot be parsed.
	ErrInvalidCSVRow = errors.New("invalid csv row")

	// ErrEmptyCSV is returned when a CSV import contains no data rows.
	ErrEmptyCSV = errors.New("csv contains no transactions")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionNotFound    TransactionErrorCode = "TXN-010001"
	ErrCodeMissingTxnFields       TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidAmount          TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionType TransactionErrorCode = "TXN-010004"
	ErrCodeAccountNotFound        TransactionErrorCode = "TXN-010005"
	ErrCodeEnvelopeNotFound       TransactionErrorCode = "TXN-010006"

	// Import errors (02XXXX)
	ErrCodeInvalidCSVRow TransactionErrorCode = "TXN-020001"
	ErrCodeEmptyCSV      TransactionErrorCode = "TXN-020002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
