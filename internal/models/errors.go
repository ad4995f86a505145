package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and handlers
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrPermissionDenied indicates the caller is not allowed to perform
	// the requested action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCannotCancel indicates the reservation is not in a cancellable state
	ErrCannotCancel = errors.New("reservation cannot be cancelled")
)

// ErrInsufficientSeats is returned when a booking requests more seats than
// the schedule currently advertises
var ErrInsufficientSeats = NewValidationError("number_of_seats", "not enough available seats")

// ValidationError is a field-level input error. Handlers render it as a 400
// keyed by the offending field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidationError unwraps err looking for a ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
