// Copyright (c) 2026 StudyMate. All rights reserved.

package match_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/api/internal/match"
)

func newMatchRouter(upstreamURL string) chi.Router {
	router := chi.NewRouter()
	router.Mount("/api/v1", match.NewHandler(match.NewClient(upstreamURL)).Routes())
	return router
}

/*
TestHandler_FindPartner_Relay verifies the query string is forwarded and the
upstream body comes back verbatim.
*/
func TestHandler_FindPartner_Relay(t *testing.T) {
	var upstreamQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/partners/find-partner", request.URL.Path)
		upstreamQuery = request.URL.RawQuery

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"matches":[{"user_id":"u-1","score":0.92}]}`))
	}))
	defer upstream.Close()

	router := newMatchRouter(upstream.URL)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
		"/api/v1/partners/find-partner?user_id=u-9&domain=math", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	// url.Values.Encode sorts keys, so the forwarded query is canonical.
	assert.Equal(t, "domain=math&user_id=u-9", upstreamQuery)
	assert.JSONEq(t, `{"matches":[{"user_id":"u-1","score":0.92}]}`, recorder.Body.String())
}

/*
TestHandler_RecommendPosts_UpstreamError verifies a non-200 upstream answer
is relayed with its own status and body.
*/
func TestHandler_RecommendPosts_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = writer.Write([]byte(`{"message":"unknown user"}`))
	}))
	defer upstream.Close()

	router := newMatchRouter(upstream.URL)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
		"/api/v1/posts/recommend-posts?user_id=ghost", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.JSONEq(t, `{"message":"unknown user"}`, recorder.Body.String())
}

/*
TestHandler_FindPartner_Unreachable verifies a transport failure maps to 502.
*/
func TestHandler_FindPartner_Unreachable(t *testing.T) {
	// Grab a port that is guaranteed closed.
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	router := newMatchRouter(deadURL)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
		"/api/v1/partners/find-partner", nil))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Matching service unavailable")
}
