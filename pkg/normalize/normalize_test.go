// Copyright (c) 2026 StudyMate. All rights reserved.

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studymate/api/pkg/normalize"
)

/*
TestFold covers accent stripping, case folding, and whitespace collapsing.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "alice", "alice"},
		{"uppercase", "ALICE", "alice"},
		{"vietnamese_accents", "Hà Nội", "ha noi"},
		{"extra_whitespace", "  An   Nguyen ", "an nguyen"},
		{"mixed", "  Đặng  VĂN  ", "đang van"},
		{"empty", "", ""},
		{"whitespace_only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Fold(tt.input))
		})
	}
}
