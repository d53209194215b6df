// Copyright (c) 2026 StudyMate. All rights reserved.

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/studymate/api/internal/platform/constants"
)

// RequestTimeout bounds a single API round trip, matching the browser
// client's fetch timeout.
const RequestTimeout = 15 * time.Second

// fallbackErrorMessage is shown when the server answers an error without a
// usable message body.
const fallbackErrorMessage = "Something went wrong"

// APIError is a non-2xx answer from the API, carrying the server's message
// verbatim so callers can show it to users unchanged.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// IsAPIError extracts the [*APIError] from err, or nil.
func IsAPIError(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// Client talks to the StudyMate API on behalf of a single session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

/*
NewClient creates an API client.

Parameters:
  - baseURL: API root, e.g. "https://api.studymate.app/api".
  - tokens: session token persistence, e.g. [NewFileTokenStore].
*/
func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: RequestTimeout},
		tokens:     tokens,
	}
}

// anonymousPaths lists endpoints that authenticate by credentials, not by
// bearer token. The stored token is withheld on these: a stale token sent
// along would be rejected by the server's token gate before the handler
// runs, and re-login after expiry would become impossible.
var anonymousPaths = map[string]bool{
	"/auth/login":    true,
	"/auth/register": true,
}

/*
do runs one API round trip.

Description: The stored token, when present, rides along as a bearer header
except on [anonymousPaths]. Non-2xx answers decode into [*APIError] with the
server message; a body without a message falls back to a generic one. When
out is non-nil the success body is decoded into it.
*/
func (client *Client) do(context context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := client.baseURL + path
	if query != nil {
		if encoded := query.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway_encode_request_failed: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(context, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("gateway_build_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if !anonymousPaths[path] {
		token, err := client.tokens.Get()
		if err != nil {
			return err
		}
		if token != "" {
			request.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
		}
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("gateway_round_trip_failed: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("gateway_read_body_failed: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &APIError{
			Status:  response.StatusCode,
			Message: errorMessage(raw),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("gateway_decode_response_failed: %w", err)
		}
	}

	return nil
}

// errorMessage extracts the server's message field from an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallbackErrorMessage
}

// get runs a GET round trip.
func (client *Client) get(context context.Context, path string, query url.Values, out any) error {
	return client.do(context, http.MethodGet, path, query, nil, out)
}

// post runs a POST round trip.
func (client *Client) post(context context.Context, path string, body, out any) error {
	return client.do(context, http.MethodPost, path, nil, body, out)
}

// put runs a PUT round trip.
func (client *Client) put(context context.Context, path string, body, out any) error {
	return client.do(context, http.MethodPut, path, nil, body, out)
}

// del runs a DELETE round trip.
func (client *Client) del(context context.Context, path string, out any) error {
	return client.do(context, http.MethodDelete, path, nil, nil, out)
}
