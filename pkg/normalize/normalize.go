// Copyright (c) 2026 StudyMate. All rights reserved.

// Package normalize folds arbitrary Unicode strings into a canonical ASCII
// form for case- and accent-insensitive matching.
//
// # Usage
//
// User search folds incoming queries so that "  José " and "jose" hit
// storage as the same term; case-insensitive matching is then left to the
// database.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts a Unicode string into its lowercase, accent-free form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Collapses internal whitespace runs to single spaces and trims.
func Fold(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Collapse whitespace
	result = strings.Join(strings.Fields(result), " ")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
