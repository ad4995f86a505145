package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialValidator(t *testing.T) {
	validator := NewCredentialValidator()
	assert.NotNil(t, validator)
}

func TestValidateUsername_Valid(t *testing.T) {
	validator := NewCredentialValidator()

	validUsernames := []struct {
		input    string
		expected string
		name     string
	}{
		{"jane", "jane", "Simple lowercase"},
		{"Jane.Doe", "Jane.Doe", "With dot"},
		{"jane_doe", "jane_doe", "With underscore"},
		{"jane-doe", "jane-doe", "With hyphen"},
		{"  jane  ", "jane", "Surrounding whitespace trimmed"},
		{"abc", "abc", "Minimum length"},
		{"a23456789012345678901234567890", "a23456789012345678901234567890", "Maximum length"},
	}

	for _, tc := range validUsernames {
		t.Run(tc.name, func(t *testing.T) {
			sanitized, err := validator.ValidateUsername(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sanitized)
		})
	}
}

func TestValidateUsername_Invalid(t *testing.T) {
	validator := NewCredentialValidator()

	invalidUsernames := []struct {
		input string
		err   error
		name  string
	}{
		{"", ErrEmptyUsername, "Empty"},
		{"   ", ErrEmptyUsername, "Whitespace only"},
		{"ab", ErrUsernameLength, "Too short"},
		{"a234567890123456789012345678901", ErrUsernameLength, "Too long"},
		{"jane doe", ErrUsernameFormat, "Contains space"},
		{"jane@doe", ErrUsernameFormat, "Contains at sign"},
		{"jane!", ErrUsernameFormat, "Contains punctuation"},
	}

	for _, tc := range invalidUsernames {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.ValidateUsername(tc.input)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	validator := NewCredentialValidator()

	t.Run("Valid", func(t *testing.T) {
		sanitized, err := validator.ValidateEmail("jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", sanitized)
	})

	t.Run("Lowercased And Trimmed", func(t *testing.T) {
		sanitized, err := validator.ValidateEmail("  Jane@Example.COM  ")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", sanitized)
	})

	t.Run("Invalid", func(t *testing.T) {
		invalid := []string{"", "jane", "jane@", "@example.com", "jane@example", "jane doe@example.com"}
		for _, email := range invalid {
			_, err := validator.ValidateEmail(email)
			assert.ErrorIs(t, err, ErrInvalidEmail, email)
		}
	})
}

func TestValidatePassword(t *testing.T) {
	validator := NewCredentialValidator()

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validator.ValidatePassword("password123"))
		assert.NoError(t, validator.ValidatePassword("12345678"))
	})

	t.Run("Too Short", func(t *testing.T) {
		assert.ErrorIs(t, validator.ValidatePassword("1234567"), ErrPasswordLength)
		assert.ErrorIs(t, validator.ValidatePassword(""), ErrPasswordLength)
	})
}
