// Copyright (c) 2026 StudyMate. All rights reserved.

package match

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studymate/api/internal/platform/apperr"
	"github.com/studymate/api/internal/platform/respond"
)

// # Definitions & Constructors

// Handler relays recommendation requests to the matching service.
type Handler struct {
	matchClient *Client
}

// NewHandler constructs a new [Handler].
func NewHandler(client *Client) *Handler {
	return &Handler{matchClient: client}
}

// Routes returns a [chi.Router] configured with recommendation routes.
//
// # Endpoints
//   - GET /partners/find-partner   : Partner recommendations.
//   - GET /posts/recommend-posts   : Post recommendations.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/partners/find-partner", handler.findPartner)
	router.Get("/posts/recommend-posts", handler.recommendPosts)

	return router
}

/*
FindPartner relays a partner recommendation query.

GET /api/v1/partners/find-partner

Description: The query string is forwarded untouched and the upstream body
is relayed verbatim, status code included.

Response:
  - upstream status and body on any completed round trip
  - 502: Matching service unreachable
*/
func (handler *Handler) findPartner(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.matchClient.FindPartner(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, apperr.BadGateway("Matching service unavailable", err))
		return
	}

	respond.Raw(writer, result.Status, result.Body)
}

/*
RecommendPosts relays a post recommendation query.

GET /api/v1/posts/recommend-posts

Response:
  - upstream status and body on any completed round trip
  - 502: Matching service unreachable
*/
func (handler *Handler) recommendPosts(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.matchClient.RecommendPosts(request.Context(), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, apperr.BadGateway("Matching service unavailable", err))
		return
	}

	respond.Raw(writer, result.Status, result.Body)
}
