// Copyright (c) 2026 StudyMate. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError], plus the standalone
// credential rules shared by the server handlers and the client signup flow.
//
// # Architecture
//
// The Validator is used at the request boundary — it ensures that business
// logic only operates on semantically valid data. The predicate helpers
// (EmailShapeOK, PasswordStrong) are the single source of truth for the
// signup rules so client and server can never drift apart.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/studymate/api/internal/platform/apperr"
)

var (
	// emailShapeRegex is the legacy client rule: no whitespace, exactly one
	// '@', at least one '.' in the domain part.
	emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// uuidRegex matches a UUIDv4 or UUIDv7 string.
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// # Shared Credential Rules

// EmailShapeOK reports whether value matches the basic email shape
// local@domain.tld used by both signup validation gates.
func EmailShapeOK(value string) bool {
	return emailShapeRegex.MatchString(value)
}

// PasswordStrong reports whether value satisfies the password policy:
// length >= 8 with at least one lowercase letter, one uppercase letter,
// and one digit.
//
// RE2 has no lookahead, so the rule is spelled out as explicit checks
// rather than a single regex.
func PasswordStrong(value string) bool {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return false
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLower && hasUpper && hasDigit
}

// # Chainable Validator

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Email fails if the value does not match the basic email shape.
func (v *Validator) Email(field, value string) *Validator {
	if !EmailShapeOK(value) {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Password fails if the value does not satisfy the password policy.
func (v *Validator) Password(field, value string) *Validator {
	if !PasswordStrong(value) {
		v.add(field, "Must be 8+ characters with at least one uppercase, one lowercase, and one number")
	}
	return v
}

// UUID fails if the value is not a valid UUID string (case-insensitive).
func (v *Validator) UUID(field, value string) *Validator {
	lower := strings.ToLower(value)
	if !uuidRegex.MatchString(lower) {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("domains", len(domains) > 10, "Maximum 10 domains")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// ErrWithMessage behaves like [Validator.Err] but overrides the top-level
// message, keeping the collected per-field details.
//
// The legacy contract requires specific top-level messages (for example
// "Please provide email and password") that clients display verbatim.
func (v *Validator) ErrWithMessage(message string) error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(message, v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
