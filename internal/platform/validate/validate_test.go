// Copyright (c) 2026 StudyMate. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/api/internal/platform/apperr"
	"github.com/studymate/api/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "StudyMate", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestEmailShapeOK checks the email shape rule shared by server and client.
*/
func TestEmailShapeOK(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"minimal_valid", "a@b.co", true},
		{"no_at_sign", "bad-email", false},
		{"missing_domain", "test@", false},
		{"missing_tld_dot", "test@example", false},
		{"space_in_local", "a b@c.de", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, validate.EmailShapeOK(tt.email))
		})
	}
}

/*
TestPasswordStrong checks the strength rule: at least 8 characters with one
lowercase, one uppercase, and one digit.
*/
func TestPasswordStrong(t *testing.T) {
	tests := []struct {
		name     string
		password string
		isStrong bool
	}{
		{"meets_all", "Abcd1234", true},
		{"long_mixed", "Sup3rSecretPass", true},
		{"no_uppercase", "abc12345", false},
		{"no_lowercase", "ABC12345", false},
		{"no_digit", "Abcdefgh", false},
		{"too_short", "Ab1", false},
		{"exactly_eight", "Abcdefg1", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isStrong, validate.PasswordStrong(tt.password))
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "an_nguyen").
		MinLen("username", "an_nguyen", 3).
		MaxLen("username", "an_nguyen", 20).
		Email("email", "an@studymate.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_ErrWithMessage verifies the top-level message override used by
the legacy endpoints.
*/
func TestValidator_ErrWithMessage(t *testing.T) {
	v := &validate.Validator{}
	v.Required("email", "").Required("password", "")

	err := v.ErrWithMessage("Please provide email and password")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Please provide email and password", ae.Message)
	assert.Len(t, ae.Details, 2)
}
