// Package error defines domain-specific errors for the property ledger.
package error

import "errors"

// Lookup errors. These surface to the caller and mean nothing was changed.
var (
	// ErrLeaseNotFound is returned when a lease id does not resolve.
	ErrLeaseNotFound = errors.New("lease not found")

	// ErrPropertyNotFound is returned when a property id does not resolve.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrRentPaymentNotFound is returned when a rent payment id does not resolve.
	ErrRentPaymentNotFound = errors.New("rent payment not found")
)

// Validation errors.
var (
	// ErrInvalidMonthlyRent is returned when monthly rent is zero or negative.
	ErrInvalidMonthlyRent = errors.New("invalid monthly rent")

	// ErrInvalidLeaseDates is returned when a lease ends before it starts.
	ErrInvalidLeaseDates = errors.New("invalid lease dates")

	// ErrInvalidRentDueDay is returned when the due day is outside 1-31.
	ErrInvalidRentDueDay = errors.New("invalid rent due day")

	// ErrInvalidLateFeePolicy is returned when grace days or fee amount is negative.
	ErrInvalidLateFeePolicy = errors.New("invalid late fee policy")

	// ErrInvalidMonth is returned when a month is outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidYear is returned when a year is not a plausible calendar year.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidDateRange is returned when a range ends before it starts.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidAmount is returned when a monetary input is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// Repository errors.
var (
	// ErrRepositoryFailure wraps I/O failures of the persistence layer.
	// The engine never retries; the caller owns retry policy.
	ErrRepositoryFailure = errors.New("repository failure")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonthlyRent   LedgerErrorCode = "LDG-010001"
	ErrCodeInvalidLeaseDates    LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidRentDueDay    LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidLateFeePolicy LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidMonth         LedgerErrorCode = "LDG-010005"
	ErrCodeInvalidYear          LedgerErrorCode = "LDG-010006"
	ErrCodeInvalidDateRange     LedgerErrorCode = "LDG-010007"
	ErrCodeInvalidAmount        LedgerErrorCode = "LDG-010008"
	ErrCodeInvalidDateFormat    LedgerErrorCode = "LDG-010009"
	ErrCodeMissingParameters    LedgerErrorCode = "LDG-010010"

	// Not found errors (02XXXX)
	ErrCodeLeaseNotFound       LedgerErrorCode = "LDG-020001"
	ErrCodePropertyNotFound    LedgerErrorCode = "LDG-020002"
	ErrCodeRentPaymentNotFound LedgerErrorCode = "LDG-020003"

	// Internal errors (99XXXX)
	ErrCodeRepositoryFailure LedgerErrorCode = "LDG-990001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewLeaseNotFoundError reports an unknown lease id.
func NewLeaseNotFoundError() *LedgerError {
	return NewLedgerError(ErrCodeLeaseNotFound, "lease not found", ErrLeaseNotFound)
}

// NewPropertyNotFoundError reports an unknown property id.
func NewPropertyNotFoundError() *LedgerError {
	return NewLedgerError(ErrCodePropertyNotFound, "property not found", ErrPropertyNotFound)
}

// NewRentPaymentNotFoundError reports an unknown rent payment id.
func NewRentPaymentNotFoundError() *LedgerError {
	return NewLedgerError(ErrCodeRentPaymentNotFound, "rent payment not found", ErrRentPaymentNotFound)
}

// IsNotFound reports whether err means an id did not resolve.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLeaseNotFound) ||
		errors.Is(err, ErrPropertyNotFound) ||
		errors.Is(err, ErrRentPaymentNotFound)
}
