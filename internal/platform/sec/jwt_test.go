// Copyright (c) 2026 StudyMate. All rights reserved.

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	service, err := NewTokenService(testSecret, "studymate.app")
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_ShortSecret verifies weak secrets are refused at startup.
*/
func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("too-short", "studymate.app")
	assert.Error(t, err)
}

/*
TestTokenService_RoundTrip verifies an issued token verifies and carries the
identity id in both the subject and the legacy "id" claim.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "studymate.app", claims.Issuer)
}

/*
TestTokenService_ExpiryBoundary pins the 30-day lifetime: valid just before
the deadline, rejected just after.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	service := newTestTokenService(t)

	issuedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }

	token, err := service.Issue("user-123")
	require.NoError(t, err)

	// Just inside the window.
	service.now = func() time.Time { return issuedAt.Add(SessionTokenTTL - time.Second) }
	_, err = service.Verify(token)
	assert.NoError(t, err)

	// Just past the window.
	service.now = func() time.Time { return issuedAt.Add(SessionTokenTTL + time.Second) }
	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies a token signed elsewhere is rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	service := newTestTokenService(t)

	other, err := NewTokenService("ffffffffffffffffffffffffffffffff", "studymate.app")
	require.NoError(t, err)

	token, err := other.Issue("user-123")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_Malformed verifies garbage input fails cleanly.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.Verify(input)
		assert.Error(t, err)
	}
}

/*
TestCheckPasswordHash verifies the bcrypt round trip and mismatch behavior.
*/
func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("Abcd1234")
	require.NoError(t, err)
	require.NotEqual(t, "Abcd1234", hash)

	assert.True(t, CheckPasswordHash("Abcd1234", hash))
	assert.False(t, CheckPasswordHash("WrongPass1", hash))
	assert.False(t, CheckPasswordHash("Abcd1234", "not-a-hash"))
}
