// Package error defines domain-specific errors for the property ledger.
package error

import "errors"

// Authentication and authorization errors.
var (
	// ErrInvalidToken is returned when a bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a bearer token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInsufficientRole is returned when the caller's role may not use the accounting API.
	ErrInsufficientRole = errors.New("insufficient role")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Authorization errors (06XXXX)
	ErrCodeForbidden AuthErrorCode = "AUTH-060001"

	// Rate limit errors (07XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-070001"
)
