// Copyright (c) 2026 StudyMate. All rights reserved.

package gateway

import (
	"context"

	"github.com/studymate/api/internal/users/auth"
)

// LoggedOutLocally is returned when the server could not be reached during
// logout. The local session is already gone by then.
const LoggedOutLocally = "Logged out locally"

// RegisterForm carries the signup fields, mirroring the server contract.
type RegisterForm struct {
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

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messagePayload struct {
	Message string `json:"message"`
}

/*
Login authenticates and persists the returned session token.

Parameters:
  - context: context.Context
  - email, password: credentials

Returns:
  - *auth.PublicUser: Profile with the fresh token
  - error: *APIError with the server message, or transport failures
*/
func (client *Client) Login(context context.Context, email, password string) (*auth.PublicUser, error) {
	var payload auth.PublicUser
	if err := client.post(context, "/auth/login", loginForm{Email: email, Password: password}, &payload); err != nil {
		return nil, err
	}

	if payload.Token != "" {
		if err := client.tokens.Set(payload.Token); err != nil {
			return nil, err
		}
	}

	return &payload, nil
}

/*
Register creates an account and persists the returned session token, so a
successful signup leaves the caller logged in.
*/
func (client *Client) Register(context context.Context, form RegisterForm) (*auth.PublicUser, error) {
	var payload auth.PublicUser
	if err := client.post(context, "/auth/register", form, &payload); err != nil {
		return nil, err
	}

	if payload.Token != "" {
		if err := client.tokens.Set(payload.Token); err != nil {
			return nil, err
		}
	}

	return &payload, nil
}

/*
Logout ends the session.

Description: The stored token is cleared before the server is told, so the
local session dies even when the network does. A transport failure reports
[LoggedOutLocally] instead of an error; the caller is logged out either way.

Returns:
  - string: Server acknowledgement, or [LoggedOutLocally]
  - error: Token store failures only
*/
func (client *Client) Logout(context context.Context) (string, error) {
	if err := client.tokens.Clear(); err != nil {
		return "", err
	}

	var payload messagePayload
	if err := client.post(context, "/auth/logout", struct{}{}, &payload); err != nil {
		return LoggedOutLocally, nil
	}

	return payload.Message, nil
}
