// Copyright (c) 2026 StudyMate. All rights reserved.

/*
Package match proxies the matching engine: partner recommendations and post
recommendations served by a separate service.

The API gateway owns authentication and the wire contract; the matching
service owns the models. Handlers here forward the query string untouched
and relay the upstream JSON body verbatim, so the two services can evolve
their payloads without redeploying each other.
*/
package match

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UpstreamTimeout bounds a single round trip to the matching service.
const UpstreamTimeout = 10 * time.Second

// Upstream paths relative to the configured base URL.
const (
	pathFindPartner    = "/partners/find-partner"
	pathRecommendPosts = "/posts/recommend-posts"
)

// Client is a thin HTTP client for the matching service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a matching-service client rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: UpstreamTimeout},
	}
}

// Result carries a verbatim upstream response body and its status code.
type Result struct {
	Status int
	Body   []byte
}

/*
Get forwards a GET with the given query string to an upstream path.

Description: The body is returned verbatim regardless of status, so the
caller can relay upstream error payloads as-is. A transport-level failure
(DNS, timeout, connection refused) returns an error instead.

Parameters:
  - context: context.Context
  - path: string (upstream path relative to the base URL)
  - query: url.Values (forwarded untouched)

Returns:
  - *Result: Upstream status and raw body
  - error: Transport failures only
*/
func (client *Client) Get(context context.Context, path string, query url.Values) (*Result, error) {
	endpoint := client.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("match_client_build_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("match_client_round_trip_failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("match_client_read_body_failed: %w", err)
	}

	return &Result{Status: response.StatusCode, Body: body}, nil
}

// FindPartner forwards a partner recommendation query.
func (client *Client) FindPartner(context context.Context, query url.Values) (*Result, error) {
	return client.Get(context, pathFindPartner, query)
}

// RecommendPosts forwards a post recommendation query.
func (client *Client) RecommendPosts(context context.Context, query url.Values) (*Result, error) {
	return client.Get(context, pathRecommendPosts, query)
}
