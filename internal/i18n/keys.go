// Package i18n provides translation of user-facing boundary messages.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyConflict indicates a uniqueness conflict.
	ErrKeyConflict = "error.conflict"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyInvalidDate indicates an unparseable order date.
	ErrKeyInvalidDate = "error.invalid_date"
)
