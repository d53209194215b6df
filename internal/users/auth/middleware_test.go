// Copyright (c) 2026 StudyMate. All rights reserved.

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/api/internal/platform/ctxutil"
	"github.com/studymate/api/internal/platform/sec"
	"github.com/studymate/api/internal/users/auth"
)

func claimsFor(userID string) *sec.AuthClaims {
	return &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		UserID:           userID,
	}
}

/*
TestRequireIdentity verifies the resolution gate: verified claims must still
map to a live account before a protected handler runs.
*/
func TestRequireIdentity(t *testing.T) {
	repo := newMemoryUserRepository()
	seeded := seedUser(t, repo, "an@studymate.app", "an_nguyen", "Abcd1234")

	var observed *auth.User
	protected := auth.RequireIdentity(repo)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observed = auth.IdentityFrom(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		claims     *sec.AuthClaims
		wantStatus int
	}{
		{"no_claims", nil, http.StatusUnauthorized},
		{"unknown_subject", claimsFor("no-such-user"), http.StatusUnauthorized},
		{"resolved_identity", claimsFor(seeded.ID), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observed = nil

			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithClaims(request.Context(), tt.claims))
			}

			recorder := httptest.NewRecorder()
			protected.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, observed)
				assert.Equal(t, seeded.ID, observed.ID)
			} else {
				assert.Nil(t, observed)
			}
		})
	}
}

/*
TestRequiredIdentity verifies the handler-level accessor.
*/
func TestRequiredIdentity(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := auth.RequiredIdentity(request)
	require.Error(t, err)
	assert.Equal(t, "Not authorized, no token", err.Error())
}
