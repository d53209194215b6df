// Copyright (c) 2026 StudyMate. All rights reserved.

/*
Package profile implements viewing and editing of user profiles, plus the
member directory search.

It builds on the identity entity owned by the auth package: profiles are not
a separate table, they are the public face of users.account.
*/
package profile

import (
	"context"
	"strings"

	"github.com/studymate/api/internal/platform/apperr"
	"github.com/studymate/api/internal/users/auth"
	"github.com/studymate/api/pkg/normalize"
	"github.com/studymate/api/pkg/pagination"
	"github.com/studymate/api/pkg/slice"
)

// # Storage Contract

// Store is the slice of the user repository the profile service needs.
type Store interface {
	FindByID(context context.Context, id string) (*auth.User, error)
	Update(context context.Context, user *auth.User) error
	Search(context context.Context, term string, domains []string, params pagination.Params) ([]auth.User, int, error)
}

// # Input Types

// UpdateInput carries the optional profile mutations. Nil fields are left
// untouched, so a partial PUT never clobbers the rest of the profile.
type UpdateInput struct {
	Name          *string
	AvatarID      *string
	Domains       *[]string
	LearningStyle *string
	StudyTime     *string
	TeamPref      *string
}

// # Service Implementation

// Service orchestrates profile reads, edits, and directory search.
type Service struct {
	store Store
}

// NewService creates a profile service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

/*
Get retrieves the public profile of a user by ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - auth.PublicUser: Client-visible projection
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (auth.PublicUser, error) {
	user, err := service.store.FindByID(context, id)
	if err != nil {
		return auth.PublicUser{}, err
	}
	return user.Public(), nil
}

/*
Update applies the non-nil fields of input to the user and persists them.

Description: The caller passes the already-resolved identity, so ownership
is enforced by construction; users can only ever update themselves.

Parameters:
  - context: context.Context
  - user: *auth.User (resolved identity, mutated in place)
  - input: UpdateInput

Returns:
  - auth.PublicUser: Updated projection
  - error: Validation or storage failures
*/
func (service *Service) Update(context context.Context, user *auth.User, input UpdateInput) (auth.PublicUser, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return auth.PublicUser{}, apperr.ValidationError("Name cannot be empty")
		}
		user.Name = name
	}
	if input.AvatarID != nil {
		user.AvatarID = *input.AvatarID
		if user.AvatarID == "" {
			user.AvatarID = auth.DefaultAvatarID
		}
	}
	if input.Domains != nil {
		user.Domains = *input.Domains
		if user.Domains == nil {
			user.Domains = []string{}
		}
	}
	if input.LearningStyle != nil {
		user.LearningStyle = *input.LearningStyle
	}
	if input.StudyTime != nil {
		user.StudyTime = *input.StudyTime
	}
	if input.TeamPref != nil {
		user.TeamPref = *input.TeamPref
	}

	if err := service.store.Update(context, user); err != nil {
		return auth.PublicUser{}, err
	}

	return user.Public(), nil
}

/*
Search runs a folded substring search over names and usernames.

Description: The raw query is folded (lowercased, accents stripped,
whitespace collapsed) before hitting storage, so "Hà Nội" and "ha noi"
find the same people. An optional domains filter narrows results to users
sharing at least one study domain.

Parameters:
  - context: context.Context
  - query: string (raw user input)
  - domains: []string (study domain filter, may be empty)
  - params: pagination.Params

Returns:
  - []auth.PublicUser: Matching page
  - pagination.Meta: Page metadata with total count
  - error: Validation or storage failures
*/
func (service *Service) Search(context context.Context, query string, domains []string, params pagination.Params) ([]auth.PublicUser, pagination.Meta, error) {
	term := normalize.Fold(query)
	if term == "" {
		return nil, pagination.Meta{}, apperr.ValidationError("Please provide a search query")
	}

	users, total, err := service.store.Search(context, term, domains, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	results := slice.Map(users, func(user auth.User) auth.PublicUser {
		return user.Public()
	})
	if results == nil {
		results = []auth.PublicUser{}
	}

	return results, pagination.NewMeta(params.Page, params.Limit, total), nil
}
