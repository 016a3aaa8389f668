// Package services holds the business logic between controllers and
// repositories. Services return sentinel or field-level errors;
// controllers translate them into HTTP responses.
package services

import "errors"

var (
	// ErrNotFound covers a missing entity and, for owned resources like
	// cart items, an entity the caller does not own.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller's role is insufficient.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned on a failed login or an invalid
	// refresh token. Deliberately vague about which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MailError marks a mail transport failure. Unlike other internal
// errors its message is surfaced to the client, so the caller can see
// what the transport reported instead of a generic server error.
type MailError struct {
	Err error
}

func (e *MailError) Error() string { return "contact: send mail: " + e.Err.Error() }

func (e *MailError) Unwrap() error { return e.Err }

// ValidationError carries field-level messages for a 422 response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
