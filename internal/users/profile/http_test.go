// Copyright (c) 2026 StudyMate. All rights reserved.

package profile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/api/internal/platform/apperr"
	"github.com/studymate/api/internal/platform/ctxutil"
	"github.com/studymate/api/internal/platform/sec"
	"github.com/studymate/api/internal/users/auth"
	"github.com/studymate/api/internal/users/profile"
)

// fakeIdentityRepo adapts fakeStore to [auth.UserRepository] for the gate.
// Only FindByID is exercised by [auth.RequireIdentity].
type fakeIdentityRepo struct{ *fakeStore }

func (repo fakeIdentityRepo) FindByEmail(_ context.Context, _ string) (*auth.User, error) {
	return nil, apperr.NotFound("User")
}

func (repo fakeIdentityRepo) FindByUsername(_ context.Context, _ string) (*auth.User, error) {
	return nil, apperr.NotFound("User")
}

func (repo fakeIdentityRepo) Create(_ context.Context, _ *auth.User) error { return nil }

func newProfileRouter(store *fakeStore) chi.Router {
	service := profile.NewService(store)
	gate := auth.RequireIdentity(fakeIdentityRepo{store})

	router := chi.NewRouter()
	router.Mount("/api/users", profile.NewHandler(service, gate).Routes())
	return router
}

// authedRequest builds a request carrying verified claims for userID.
func authedRequest(method, path string, body []byte, userID string) *http.Request {
	var request *http.Request
	if body != nil {
		request = httptest.NewRequest(method, path, bytes.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	} else {
		request = httptest.NewRequest(method, path, nil)
	}

	claims := &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		UserID:           userID,
	}
	return request.WithContext(ctxutil.WithClaims(request.Context(), claims))
}

/*
TestHandler_OwnProfile verifies GET /profile for a resolved identity.
*/
func TestHandler_OwnProfile(t *testing.T) {
	store, user := seededStore()
	router := newProfileRouter(store)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/users/profile", nil, user.ID))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body["_id"])
	assert.Equal(t, "an_nguyen", body["username"])
}

/*
TestHandler_OwnProfile_NoToken verifies the 401 gate.
*/
func TestHandler_OwnProfile_NoToken(t *testing.T) {
	store, _ := seededStore()
	router := newProfileRouter(store)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_UpdateProfile verifies a partial PUT round-trips.
*/
func TestHandler_UpdateProfile(t *testing.T) {
	store, user := seededStore()
	router := newProfileRouter(store)

	payload, err := json.Marshal(map[string]any{
		"learningStyle": "visual",
		"domains":       []string{"math", "physics"},
	})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodPut, "/api/users/profile", payload, user.ID))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "visual", body["learningStyle"])
	assert.Equal(t, []any{"math", "physics"}, body["domains"])
	// Untouched fields survive the partial update.
	assert.Equal(t, "An Nguyen", body["name"])
}

/*
TestHandler_ByID verifies the public profile lookup needs no token.
*/
func TestHandler_ByID(t *testing.T) {
	store, user := seededStore()
	router := newProfileRouter(store)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users/"+user.ID, nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body["_id"])
}

/*
TestHandler_Search verifies the paginated envelope.
*/
func TestHandler_Search(t *testing.T) {
	store, user := seededStore()
	store.results = []auth.User{*user}
	store.total = 1
	router := newProfileRouter(store)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet, "/api/users/search?q=an", nil, user.ID))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []map[string]any `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, user.ID, body.Data[0]["_id"])
	assert.Equal(t, float64(1), body.Meta["total"])
}

/*
TestHandler_Search_DomainsFilter verifies the comma-separated domains
parameter reaches storage as a trimmed slice.
*/
func TestHandler_Search_DomainsFilter(t *testing.T) {
	store, user := seededStore()
	router := newProfileRouter(store)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authedRequest(http.MethodGet,
		"/api/users/search?q=an&domains=Physics,%20Mathematics", nil, user.ID))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"Physics", "Mathematics"}, store.searchDomains)
}
