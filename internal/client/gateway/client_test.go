// Copyright (c) 2026 StudyMate. All rights reserved.

package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/api/internal/client/gateway"
	"github.com/studymate/api/internal/platform/middleware"
	"github.com/studymate/api/internal/platform/sec"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"_id":"user-1","name":"An Nguyen","email":"an@studymate.app",
			"username":"an_nguyen","avatarId":"default","token":"session-token",
			"domains":[],"learningStyle":"","studyTime":"","teamPref":""}`))
	})
	mux.HandleFunc("POST /api/auth/logout", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"message":"Logged out successfully"}`))
	})
	mux.HandleFunc("GET /api/users/profile", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer session-token" {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"message":"Not authorized, no token"}`))
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"_id":"user-1","username":"an_nguyen","domains":[]}`))
	})

	return httptest.NewServer(mux)
}

/*
TestClient_Login_StoresToken verifies a successful login persists the token
and later requests carry it as a bearer header.
*/
func TestClient_Login_StoresToken(t *testing.T) {
	server := authServer(t)
	defer server.Close()

	tokens := gateway.NewMemoryTokenStore()
	client := gateway.NewClient(server.URL+"/api", tokens)

	user, err := client.Login(context.Background(), "an@studymate.app", "Abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	stored, err := tokens.Get()
	require.NoError(t, err)
	assert.Equal(t, "session-token", stored)

	// The stored token rides along on the next call.
	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "an_nguyen", profile.Username)
}

/*
TestClient_Login_StaleTokenIgnored verifies a leftover stored token never
blocks re-login.

Description: The server's token gate rejects any present-but-invalid bearer
before the handler runs, so the client must withhold the stored token on
credential endpoints or an expired session could never be replaced.
*/
func TestClient_Login_StaleTokenIgnored(t *testing.T) {
	tokenService, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "studymate.app")
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Post("/api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"_id":"user-1","name":"An Nguyen","email":"an@studymate.app",
			"username":"an_nguyen","avatarId":"default","token":"fresh-token",
			"domains":[],"learningStyle":"","studyTime":"","teamPref":""}`))
	})
	server := httptest.NewServer(router)
	defer server.Close()

	// A session that no longer verifies, left behind from an earlier run.
	tokens := gateway.NewMemoryTokenStore()
	require.NoError(t, tokens.Set("left.over.garbage"))

	client := gateway.NewClient(server.URL+"/api", tokens)

	user, err := client.Login(context.Background(), "an@studymate.app", "Abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	// The fresh session replaces the stale one.
	stored, err := tokens.Get()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", stored)
}

/*
TestClient_Register_StaleTokenIgnored verifies signup works with a stale
stored token present, through the same token gate as login.
*/
func TestClient_Register_StaleTokenIgnored(t *testing.T) {
	tokenService, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "studymate.app")
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Post("/api/auth/register", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"_id":"user-2","username":"binh_tran","token":"fresh-token","domains":[]}`))
	})
	server := httptest.NewServer(router)
	defer server.Close()

	tokens := gateway.NewMemoryTokenStore()
	require.NoError(t, tokens.Set("left.over.garbage"))

	client := gateway.NewClient(server.URL+"/api", tokens)

	user, err := client.Register(context.Background(), gateway.RegisterForm{
		Name: "Binh Tran", Email: "binh@studymate.app", Username: "binh_tran", Password: "Abcd1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-2", user.ID)
}

/*
TestClient_ErrorMessage verifies server error messages surface verbatim.
*/
func TestClient_ErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"message":"Invalid email or password"}`))
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL+"/api", gateway.NewMemoryTokenStore())

	_, err := client.Login(context.Background(), "an@studymate.app", "wrong")
	require.Error(t, err)

	apiErr := gateway.IsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

/*
TestClient_ErrorFallbackMessage verifies an error body without a message
falls back to the generic one.
*/
func TestClient_ErrorFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL+"/api", gateway.NewMemoryTokenStore())

	_, err := client.Profile(context.Background())
	apiErr := gateway.IsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "Something went wrong", apiErr.Message)
}

/*
TestClient_Logout_ClearsTokenFirst verifies the local session dies even when
the server is unreachable.
*/
func TestClient_Logout_ClearsTokenFirst(t *testing.T) {
	// A server that is already gone.
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	tokens := gateway.NewMemoryTokenStore()
	require.NoError(t, tokens.Set("session-token"))

	client := gateway.NewClient(deadURL+"/api", tokens)

	message, err := client.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gateway.LoggedOutLocally, message)

	stored, err := tokens.Get()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

/*
TestClient_Logout_ServerAck verifies the server acknowledgement is relayed
when the network is fine.
*/
func TestClient_Logout_ServerAck(t *testing.T) {
	server := authServer(t)
	defer server.Close()

	tokens := gateway.NewMemoryTokenStore()
	require.NoError(t, tokens.Set("session-token"))

	client := gateway.NewClient(server.URL+"/api", tokens)

	message, err := client.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", message)
}

/*
TestFileTokenStore verifies the round trip through the on-disk store.
*/
func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studymate", "session.json")
	store := gateway.NewFileTokenStore(path)

	// Empty store reads as no session.
	token, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Set("session-token"))

	token, err = store.Get()
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)

	require.NoError(t, store.Clear())

	token, err = store.Get()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
