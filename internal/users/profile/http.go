// Copyright (c) 2026 StudyMate. All rights reserved.

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/studymate/api/internal/platform/request"
	"github.com/studymate/api/internal/platform/respond"
	"github.com/studymate/api/internal/platform/validate"
	"github.com/studymate/api/internal/users/auth"
	"github.com/studymate/api/pkg/pagination"
	queryutil "github.com/studymate/api/pkg/query"
)

// # Definitions & Constructors

// Handler implements the profile and directory HTTP endpoints.
type Handler struct {
	profileService *Service
	identityGate   func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
//
// identityGate is the resolved-identity middleware ([auth.RequireIdentity]);
// it is injected so the handler stays decoupled from storage wiring.
func NewHandler(service *Service, identityGate func(http.Handler) http.Handler) *Handler {
	return &Handler{profileService: service, identityGate: identityGate}
}

// Routes returns a [chi.Router] configured with profile routes.
//
// # Endpoints
//   - GET /search   : Paginated member directory search (auth required).
//   - GET /profile  : The caller's own profile (auth required).
//   - PUT /profile  : Partial update of the caller's profile (auth required).
//   - GET /{id}     : Public profile of any user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.identityGate)
		r.Get("/search", handler.search)
		r.Get("/profile", handler.ownProfile)
		r.Put("/profile", handler.updateProfile)
	})

	// Public endpoints. Registered last so /search and /profile win the match.
	router.Get("/{id}", handler.byID)

	return router
}

// # Request Payloads

type updateRequest struct {
	Name          *string   `json:"name"`
	AvatarID      *string   `json:"avatarId"`
	Domains       *[]string `json:"domains"`
	LearningStyle *string   `json:"learningStyle"`
	StudyTime     *string   `json:"studyTime"`
	TeamPref      *string   `json:"teamPref"`
}

/*
OwnProfile returns the authenticated caller's profile.

GET /api/users/profile

Response:
  - 200: PublicUser
  - 401: Missing or unresolvable token
*/
func (handler *Handler) ownProfile(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user.Public())
}

/*
UpdateProfile applies a partial update to the caller's own profile.

PUT /api/users/profile

Request:
  - Body: updateRequest (all fields optional)

Response:
  - 200: PublicUser: Updated projection
  - 400: Validation failure
  - 401: Missing or unresolvable token
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.profileService.Update(request.Context(), user, UpdateInput{
		Name:          input.Name,
		AvatarID:      input.AvatarID,
		Domains:       input.Domains,
		LearningStyle: input.LearningStyle,
		StudyTime:     input.StudyTime,
		TeamPref:      input.TeamPref,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
ByID returns the public profile of any user.

GET /api/users/{id}

Response:
  - 200: PublicUser
  - 404: Unknown or deleted user
*/
func (handler *Handler) byID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	public, err := handler.profileService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, public)
}

/*
Search runs the member directory search.

GET /api/users/search?q=term&domains=Physics,Mathematics&page=1&limit=20

Response:
  - 200: Paginated list of PublicUser
  - 400: Empty query
  - 401: Missing or unresolvable token
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	domains := queryutil.StringSlice(values.Get("domains"))
	params := pagination.FromRequest(request)

	results, meta, err := handler.profileService.Search(request.Context(), values.Get("q"), domains, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, results, meta)
}
