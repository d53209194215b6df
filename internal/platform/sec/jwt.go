// Copyright (c) 2026 StudyMate. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenIssuer] interface.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenTTL is the lifetime of an issued session token.
//
// The session proof is fully stateless: there is no server-side session
// record and no refresh mechanism. An expired token forces a re-login,
// so the window is deliberately long (30 days).
const SessionTokenTTL = 30 * 24 * time.Hour

// MinSecretLength is the minimum byte length accepted for the signing secret.
// Anything shorter than the HMAC-SHA256 block would weaken the signature.
const MinSecretLength = 32

// AuthClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the identity id directly inside the JWT, the authentication
// middleware can establish WHO is calling without any shared session storage.
// Whether the account still exists is a separate resolution step against the
// credential store.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID mirrors the Subject claim under the legacy "id" key that
	// existing clients decode.
	UserID string `json:"id"`
}

// TokenService handles generation and verification of session tokens using HS256.
//
// The signing secret is process-wide configuration loaded once at startup and
// treated as an immutable value for the process lifetime.
type TokenService struct {
	secret []byte
	issuer string

	// now is the clock used for issuance and verification. Overridable in tests.
	now func() time.Time
}

// NewTokenService creates a new TokenService from the shared signing secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", MinSecretLength)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Issue creates a new signed session token for an identity id.
//
// The token embeds the id and an expiry 30 days from issuance. Validity is
// fully determined by signature and expiry at verification time.
func (service *TokenService) Issue(identityID string) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(SessionTokenTTL)),
		},
		UserID: identityID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a session token string.
//
// It fails on a bad signature, a foreign signing algorithm, malformed input,
// or an expired token. There is no refresh path.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	// Tokens minted before the "id" claim existed carry only the subject.
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}

	return claims, nil
}
