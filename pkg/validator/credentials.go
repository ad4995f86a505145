package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyUsername indicates the username is empty
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrUsernameLength indicates the username length is out of range
	ErrUsernameLength = errors.New("username must be between 3 and 30 characters")

	// ErrUsernameFormat indicates the username contains invalid characters
	ErrUsernameFormat = errors.New("username can only contain letters, digits, dots, underscores and hyphens")

	// ErrInvalidEmail indicates the email address is malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrPasswordLength indicates the password is too short
	ErrPasswordLength = errors.New("password must be at least 8 characters")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// CredentialValidator validates registration credentials
type CredentialValidator struct{}

// NewCredentialValidator creates a new credential validator instance
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{}
}

// ValidateUsername validates and sanitizes a username. Returns the trimmed
// username and an error if invalid.
func (v *CredentialValidator) ValidateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", ErrEmptyUsername
	}
	if len(trimmed) < 3 || len(trimmed) > 30 {
		return "", ErrUsernameLength
	}
	if !usernameRegex.MatchString(trimmed) {
		return "", ErrUsernameFormat
	}
	return trimmed, nil
}

// ValidateEmail validates and sanitizes an email address
func (v *CredentialValidator) ValidateEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(trimmed) {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

// ValidatePassword validates a password
func (v *CredentialValidator) ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordLength
	}
	return nil
}
