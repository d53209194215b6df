// Copyright (c) 2026 StudyMate. All rights reserved.

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation through login to the stateless logout acknowledgement.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface with flat response bodies.
  - Security: Orchestrates JWT issuance through the [Service].
  - Verification: Enforces input presence before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studymate/api/internal/platform/middleware"
	requestutil "github.com/studymate/api/internal/platform/request"
	"github.com/studymate/api/internal/platform/respond"
	"github.com/studymate/api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and returns it with a token.
//   - POST /login    : Authenticates and returns the account with a token.
//   - POST /logout   : Acknowledges logout; sessions are stateless.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	return router
}

// # Request Payloads

type registerRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	AvatarID      string   `json:"avatarId"`
	Domains       []string `json:"domains"`
	LearningStyle string   `json:"learningStyle"`
	StudyTime     string   `json:"studyTime"`
	TeamPref      string   `json:"teamPref"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/auth/register

Description: Validates presence of the four account fields, checks for
identity conflicts (email first), and persists a new user profile.

Request:
  - Body: registerRequest

Response:
  - 201: PublicUser: Created profile carrying a fresh session token
  - 400: Missing fields, or email/username already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Presence only. Shape and strength checks belong to the signup client;
	// the server contract promises this exact message for any missing field.
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if validator.HasErrors() {
		respond.Error(writer, request,
			validator.ErrWithMessage("Please provide all required fields (name, email, username, password)"))
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:          input.Name,
		Email:         input.Email,
		Username:      input.Username,
		Password:      input.Password,
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

	respond.Created(writer, session.User.PublicWithToken(session.Token))
}

/*
Login authenticates an existing user.

POST /api/auth/login

Description: Verifies credentials and returns the profile with a fresh
session token. Unknown email and wrong password are indistinguishable.

Request:
  - Body: loginRequest

Response:
  - 200: PublicUser: Profile carrying a fresh session token
  - 400: Missing email or password
  - 401: Invalid credentials
  - 429: Too many recent failures from this client
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if validator.HasErrors() {
		respond.Error(writer, request,
			validator.ErrWithMessage("Please provide email and password"))
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		ClientKey: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.User.PublicWithToken(session.Token))
}

/*
Logout acknowledges the end of a session.

POST /api/auth/logout

Description: Sessions are stateless JWTs, so there is nothing to revoke
server-side. The endpoint exists so clients have a uniform lifecycle; the
real logout is the client discarding its stored token.

Response:
  - 200: message: "Logged out successfully"
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{FieldMessage: MsgLoggedOut})
}
