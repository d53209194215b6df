// Copyright (c) 2026 StudyMate. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/studymate/api/pkg/pagination"
)

// # Constants

const (
	// MaxLoginFailures is the number of failed password attempts tolerated per
	// client within [LoginFailWindow] before login is throttled.
	MaxLoginFailures = 10

	// LoginFailWindow is the fixed window over which login failures accumulate.
	LoginFailWindow = 15 * time.Minute
)

// # Repository Contract

/*
UserRepository defines the persistence contract for user accounts.

Implementations must treat soft-deleted rows (deletedat set) as absent:
lookups skip them and uniqueness is only enforced among live rows.
*/
type UserRepository interface {
	/*
		FindByID retrieves a live user by primary key.

		Returns [apperr.NotFound] when no live row matches.
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail retrieves a live user by exact email.

		Returns [apperr.NotFound] when no live row matches.
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername retrieves a live user by exact username.

		Returns [apperr.NotFound] when no live row matches.
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a new user row.

		A unique violation on email or username surfaces as the same
		conflict error the pre-insert checks produce, so callers see one
		consistent failure mode regardless of which layer catches the race.
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists the mutable profile fields of an existing user and
		refreshes updatedat.
	*/
	Update(context context.Context, user *User) error

	/*
		Search returns live users whose folded name or username contains the
		folded query term, newest first, along with the total match count.
		A non-empty domains filter keeps only users sharing at least one of
		the given study domains.
	*/
	Search(context context.Context, term string, domains []string, params pagination.Params) ([]User, int, error)
}

// # Throttle Contract

/*
LoginThrottle counts recent login failures per client key.

The throttle is advisory: implementations signal infrastructure problems via
the error return, and the caller fails open so an unavailable counter never
locks users out.
*/
type LoginThrottle interface {
	// Failures reports the current failure count for the key.
	Failures(context context.Context, key string) (int64, error)

	// RecordFailure increments the failure count for the key, starting the
	// window on the first failure.
	RecordFailure(context context.Context, key string) error

	// Reset clears the failure count for the key after a successful login.
	Reset(context context.Context, key string) error
}
