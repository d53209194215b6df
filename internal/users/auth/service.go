// Copyright (c) 2026 StudyMate. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/studymate/api/internal/platform/apperr"
	"github.com/studymate/api/internal/platform/sec"
	"github.com/studymate/api/pkg/uuidv7"
)

// # Wire Messages

// Messages pinned by the client contract. The browser matches on these
// strings, so they must not drift.
const (
	MsgEmailExists        = "User with this email already exists"
	MsgUsernameTaken      = "This username is already taken"
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoggedOut          = "Logged out successfully"
)

// # Service Contracts

// TokenIssuer mints a signed session token for an authenticated identity.
type TokenIssuer interface {
	Issue(identityID string) (string, error)
}

// # Input / Output Types

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Name          string
	Email         string
	Username      string
	Password      string
	AvatarID      string
	Domains       []string
	LearningStyle string
	StudyTime     string
	TeamPref      string
}

// LoginInput carries the login form fields plus the client key used for
// failure throttling (typically the caller's IP).
type LoginInput struct {
	Email     string
	Password  string
	ClientKey string
}

// Session is the result of a successful register or login: the user identity
// with a freshly minted bearer token.
type Session struct {
	User  *User
	Token string
}

// # Service Implementation

// Service orchestrates registration and login.
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	throttle LoginThrottle
}

/*
NewService creates an authentication service.

Parameters:
  - users: account persistence.
  - tokens: session token issuer.
  - throttle: login failure counter, may be nil to disable throttling.
*/
func NewService(users UserRepository, tokens TokenIssuer, throttle LoginThrottle) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		throttle: throttle,
	}
}

/*
Register creates a new account and opens a session for it.

Uniqueness is checked before insert, email first, so the client always sees
the email conflict when both fields collide. The insert itself still maps
unique violations to the same errors, covering the check-then-insert race.
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	// ── 1. Uniqueness pre-checks, email before username. ──
	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict(MsgEmailExists)
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	if _, err := service.users.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict(MsgUsernameTaken)
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	// ── 2. Hash the password. Plaintext never leaves this scope. ──
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	// ── 3. Build and persist the account. ──
	now := time.Now().UTC()
	user := &User{
		ID:            uuidv7.New(),
		Name:          input.Name,
		Email:         input.Email,
		Username:      input.Username,
		PasswordHash:  passwordHash,
		AvatarID:      input.AvatarID,
		Domains:       input.Domains,
		LearningStyle: input.LearningStyle,
		StudyTime:     input.StudyTime,
		TeamPref:      input.TeamPref,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if user.AvatarID == "" {
		user.AvatarID = DefaultAvatarID
	}
	if user.Domains == nil {
		user.Domains = []string{}
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	// ── 4. Open the session. ──
	token, err := service.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("issue session token: %w", err))
	}

	return &Session{User: user, Token: token}, nil
}

/*
Login verifies credentials and opens a session.

All credential failures return the same message and status, so a caller
cannot distinguish an unknown email from a wrong password.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	// ── 1. Throttle check. An unavailable counter fails open. ──
	if service.throttle != nil && input.ClientKey != "" {
		failures, err := service.throttle.Failures(context, input.ClientKey)
		if err == nil && failures >= MaxLoginFailures {
			return nil, apperr.RateLimited(int(LoginFailWindow / time.Second))
		}
	}

	// ── 2. Look up the account and verify the password. ──
	user, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			service.recordFailure(context, input.ClientKey)
			return nil, apperr.Unauthorized(MsgInvalidCredentials)
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.recordFailure(context, input.ClientKey)
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	// ── 3. Open the session and clear the failure window. ──
	if service.throttle != nil && input.ClientKey != "" {
		_ = service.throttle.Reset(context, input.ClientKey)
	}

	token, err := service.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("issue session token: %w", err))
	}

	return &Session{User: user, Token: token}, nil
}

// recordFailure bumps the throttle counter, ignoring counter errors.
func (service *Service) recordFailure(context context.Context, clientKey string) {
	if service.throttle == nil || clientKey == "" {
		return
	}
	_ = service.throttle.RecordFailure(context, clientKey)
}
