// Copyright (c) 2026 StudyMate. All rights reserved.

package auth

import (
	"context"
	"net/http"

	"github.com/studymate/api/internal/platform/apperr"
	"github.com/studymate/api/internal/platform/ctxkey"
	"github.com/studymate/api/internal/platform/ctxutil"
	"github.com/studymate/api/internal/platform/respond"
)

// # Identity Gate

/*
RequireIdentity guards routes that need a resolved user behind the claims
attached by the platform token middleware.

Description: A valid signature alone is not enough to pass this gate. The
subject must still resolve to a live account, so tokens for deleted users
die here with a 401 even though they verify cryptographically.

Parameters:
  - users: UserRepository used to resolve the token subject.

Returns:
  - func(http.Handler) http.Handler: Middleware injecting the [*User] into context.
*/
func RequireIdentity(users UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetClaims(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, no token"))
				return
			}

			user, err := users.FindByID(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, user not found"))
				return
			}

			requestContext := context.WithValue(request.Context(), ctxkey.KeyIdentity, user)
			next.ServeHTTP(writer, request.WithContext(requestContext))
		})
	}
}

// IdentityFrom extracts the resolved [*User] from the context, or nil when
// the request did not pass through [RequireIdentity].
func IdentityFrom(ctx context.Context) *User {
	user, _ := ctx.Value(ctxkey.KeyIdentity).(*User)
	return user
}

// RequiredIdentity extracts the resolved [*User] or returns a 401 error.
func RequiredIdentity(request *http.Request) (*User, error) {
	user := IdentityFrom(request.Context())
	if user == nil {
		return nil, apperr.Unauthorized("Not authorized, no token")
	}
	return user, nil
}
