// Copyright (c) 2026 StudyMate. All rights reserved.

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/api/internal/users/auth"
)

// newAuthRouter mounts the auth handler over in-memory doubles.
func newAuthRouter(t *testing.T) (chi.Router, *memoryUserRepository) {
	t.Helper()

	service, repo, _, _ := newTestService()

	router := chi.NewRouter()
	router.Mount("/api/auth", auth.NewHandler(service).Routes())
	return router, repo
}

func postJSON(t *testing.T, router chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_Register_Success verifies the 201 response is the flat profile
shape the browser client reads, token included.
*/
func TestHandler_Register_Success(t *testing.T) {
	router, _ := newAuthRouter(t)

	recorder := postJSON(t, router, "/api/auth/register", map[string]any{
		"name":     "An Nguyen",
		"email":    "an@studymate.app",
		"username": "an_nguyen",
		"password": "Abcd1234",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decodeBody(t, recorder)
	assert.NotEmpty(t, body["_id"])
	assert.Equal(t, "An Nguyen", body["name"])
	assert.Equal(t, "an@studymate.app", body["email"])
	assert.Equal(t, "an_nguyen", body["username"])
	assert.Equal(t, "default", body["avatarId"])
	assert.Equal(t, "test-token", body["token"])

	// Domains must serialize as an array, never null.
	domains, ok := body["domains"].([]any)
	require.True(t, ok)
	assert.Empty(t, domains)

	// The hash must never appear on the wire.
	assert.NotContains(t, recorder.Body.String(), "passwordhash")
	assert.NotContains(t, recorder.Body.String(), "Abcd1234")
}

/*
TestHandler_Register_MissingFields verifies the pinned 400 message when any
of the four account fields is absent.
*/
func TestHandler_Register_MissingFields(t *testing.T) {
	router, _ := newAuthRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"no_name", map[string]any{"email": "a@b.co", "username": "u", "password": "Abcd1234"}},
		{"no_email", map[string]any{"name": "A", "username": "u", "password": "Abcd1234"}},
		{"no_username", map[string]any{"name": "A", "email": "a@b.co", "password": "Abcd1234"}},
		{"no_password", map[string]any{"name": "A", "email": "a@b.co", "username": "u"}},
		{"empty_body", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/api/auth/register", tt.body)

			require.Equal(t, http.StatusBadRequest, recorder.Code)
			body := decodeBody(t, recorder)
			assert.Equal(t, "Please provide all required fields (name, email, username, password)", body["message"])
		})
	}
}

/*
TestHandler_Register_EmailConflict verifies a duplicate signup answers 400
with the pinned conflict message.
*/
func TestHandler_Register_EmailConflict(t *testing.T) {
	router, repo := newAuthRouter(t)
	seedUser(t, repo, "an@studymate.app", "an_nguyen", "Abcd1234")

	recorder := postJSON(t, router, "/api/auth/register", map[string]any{
		"name":     "Clone",
		"email":    "an@studymate.app",
		"username": "someone_else",
		"password": "Abcd1234",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, auth.MsgEmailExists, body["message"])
}

/*
TestHandler_Login_Success verifies the 200 login response shape.
*/
func TestHandler_Login_Success(t *testing.T) {
	router, repo := newAuthRouter(t)
	seeded := seedUser(t, repo, "an@studymate.app", "an_nguyen", "Abcd1234")

	recorder := postJSON(t, router, "/api/auth/login", map[string]any{
		"email":    "an@studymate.app",
		"password": "Abcd1234",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, seeded.ID, body["_id"])
	assert.Equal(t, "test-token", body["token"])
}

/*
TestHandler_Login_MissingFields verifies the pinned 400 message for login.
*/
func TestHandler_Login_MissingFields(t *testing.T) {
	router, _ := newAuthRouter(t)

	recorder := postJSON(t, router, "/api/auth/login", map[string]any{
		"email": "an@studymate.app",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Please provide email and password", body["message"])
}

/*
TestHandler_Login_InvalidCredentials verifies the uniform 401 failure.
*/
func TestHandler_Login_InvalidCredentials(t *testing.T) {
	router, repo := newAuthRouter(t)
	seedUser(t, repo, "an@studymate.app", "an_nguyen", "Abcd1234")

	recorder := postJSON(t, router, "/api/auth/login", map[string]any{
		"email":    "an@studymate.app",
		"password": "WrongPass1",
	})

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, auth.MsgInvalidCredentials, body["message"])
}

/*
TestHandler_Logout verifies the stateless acknowledgement.
*/
func TestHandler_Logout(t *testing.T) {
	router, _ := newAuthRouter(t)

	recorder := postJSON(t, router, "/api/auth/logout", map[string]any{})

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, auth.MsgLoggedOut, body["message"])
}
