// Copyright (c) 2026 StudyMate. All rights reserved.

/*
Package auth implements the user identity layer: registration, login, and the
per-request identity gate.

It defines the core domain entity (User) and the business rules related to
account identity. Sessions are fully stateless — validity of a bearer token
is determined by its signature and expiry alone, never by server-side records.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
transport dependencies and encapsulates all invariants related to identity:
email and username are globally unique, and the password plaintext never
leaves the hashing boundary.
*/
package auth

import "time"

// DefaultAvatarID is the sentinel avatar assigned when signup omits one.
const DefaultAvatarID = "default"

// # Domain Entities

// User represents a registered member of the StudyMate platform.
type User struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"` // Explicitly omitted from JSON for security.
	AvatarID      string    `json:"avatarId"`
	Domains       []string  `json:"domains"`
	LearningStyle string    `json:"learningStyle"`
	StudyTime     string    `json:"studyTime"`
	TeamPref      string    `json:"teamPref"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// PublicUser is the flat wire projection of a [User].
//
// The legacy browser client reads these exact field names (including `_id`)
// directly off the response body, so the shape is pinned.
type PublicUser struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Username      string   `json:"username"`
	AvatarID      string   `json:"avatarId"`
	Token         string   `json:"token,omitempty"`
	Domains       []string `json:"domains"`
	LearningStyle string   `json:"learningStyle"`
	StudyTime     string   `json:"studyTime"`
	TeamPref      string   `json:"teamPref"`
}

// Public returns the client-visible projection of the user, without a token.
func (user *User) Public() PublicUser {
	// The contract promises a JSON array for domains, never null.
	domains := user.Domains
	if domains == nil {
		domains = []string{}
	}

	return PublicUser{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Username:      user.Username,
		AvatarID:      user.AvatarID,
		Domains:       domains,
		LearningStyle: user.LearningStyle,
		StudyTime:     user.StudyTime,
		TeamPref:      user.TeamPref,
	}
}

// PublicWithToken returns the client-visible projection carrying a freshly
// issued session token, as returned by register and login.
func (user *User) PublicWithToken(token string) PublicUser {
	public := user.Public()
	public.Token = token
	return public
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldToken    = "token"
	FieldMessage  = "message"
)
