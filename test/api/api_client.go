/*
Copyright 2026 the Story Spoiler Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/storyspoiler/storyspoiler-tests/test/api/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type APIClient struct {
	baseURL   string
	client    *http.Client
	authToken string
	config    *TestConfig
	endpoints *Endpoints
	validator *openapi.Validator
}

// Response is what the service answered to a single request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string

	// ContractErr is set when response validation is enabled and the
	// response does not match the API description.
	ContractErr error
}

// Contains reports whether the body contains the given phrase.
func (r *Response) Contains(phrase string) bool {
	return strings.Contains(string(r.Body), phrase)
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response body (trace ID: %s): %w", r.TraceID, err)
	}

	return nil
}

func NewAPIClient(baseURL string) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = config.BaseURL
	}

	return newAPIClientWithConfig(config, baseURL)
}

func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) (*APIClient, error) {
	c := &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
	}

	if config.ValidateResponses {
		validator, err := openapi.NewValidator(context.Background())
		if err != nil {
			return nil, fmt.Errorf("creating response validator: %w", err)
		}

		c.validator = validator
	}

	return c, nil
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

// Close releases any idle connections held by the client.
func (c *APIClient) Close() {
	c.client.CloseIdleConnections()
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace ID per request lets a failing check be found in the service logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any, expectedStatus int) (*Response, error) {
	log := log.FromContext(ctx).WithValues("method", method, "path", path)

	fullURL := c.baseURL + path

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=storyspoiler")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "duration", duration, "traceID", traceID)
		return nil, fmt.Errorf("http request failed (trace ID: %s): %w", traceID, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "duration", duration, "status", resp.StatusCode, "traceID", traceID)
		return nil, fmt.Errorf("reading response body (trace ID: %s): %w", traceID, err)
	}

	if c.config.LogRequests {
		log.Info("request complete", "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	} else {
		log.V(1).Info("request complete", "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	}

	logBody := c.loggableBody(path, respBody)

	if len(respBody) > 0 {
		if c.config.LogResponses {
			log.Info("response body", "body", logBody, "traceID", traceID)
		} else {
			log.V(2).Info("response body", "body", logBody, "traceID", traceID)
		}
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    traceID,
	}

	if c.validator != nil {
		result.ContractErr = c.validateResponse(ctx, method, fullURL, result)
		if result.ContractErr != nil {
			log.Info("response does not match the API description", "error", result.ContractErr.Error(), "traceID", traceID)
		}
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		log.Info("unexpected status", "expected", expectedStatus, "got", resp.StatusCode, "body", logBody, "traceID", traceID)
		return result, fmt.Errorf("%w: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, expectedStatus, resp.StatusCode, logBody, traceID)
	}

	return result, nil
}

// loggableBody returns the body as text, or only its length for login
// responses which echo the password and carry the access token.
func (c *APIClient) loggableBody(path string, body []byte) string {
	if path == c.endpoints.Authenticate() {
		return fmt.Sprintf("<redacted %d bytes>", len(body))
	}

	return string(body)
}

// validateResponse checks a response against the embedded API description.
// The request is rebuilt without a body as only its route is needed.
func (c *APIClient) validateResponse(ctx context.Context, method, fullURL string, resp *Response) error {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return fmt.Errorf("creating validation request: %w", err)
	}

	return c.validator.ValidateResponse(req, resp.StatusCode, resp.Header, resp.Body)
}

// Authenticate logs in and returns the access token. Unlike the story
// operations any non-200 status is an error, and so is a missing token.
func (c *APIClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	credentials := Credentials{
		Username: username,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Authenticate(), credentials, http.StatusOK)
	if err != nil {
		if resp != nil {
			return "", fmt.Errorf("%w: user %s: %w", ErrAuthenticationFailed, username, err)
		}

		return "", fmt.Errorf("authenticating user %s: %w", username, err)
	}

	var auth AuthResponse
	if err := resp.DecodeJSON(&auth); err != nil {
		return "", fmt.Errorf("authenticating user %s: %w", username, err)
	}

	if auth.AccessToken == "" {
		return "", fmt.Errorf("%w (trace ID: %s)", ErrMissingToken, resp.TraceID)
	}

	return auth.AccessToken, nil
}

// CreateStory creates a new story spoiler.
func (c *APIClient) CreateStory(ctx context.Context, story StoryDTO) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreateStory(), story, 0)
	if err != nil {
		return nil, fmt.Errorf("creating story: %w", err)
	}

	return resp, nil
}

// EditStory replaces the contents of an existing story spoiler.
func (c *APIClient) EditStory(ctx context.Context, storyID string, story StoryDTO) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, c.endpoints.EditStory(storyID), story, 0)
	if err != nil {
		return nil, fmt.Errorf("editing story %s: %w", storyID, err)
	}

	return resp, nil
}

// ListStories lists every story spoiler.
func (c *APIClient) ListStories(ctx context.Context) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListStories(), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}

	return resp, nil
}

// DeleteStory deletes a story spoiler.
func (c *APIClient) DeleteStory(ctx context.Context, storyID string) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.DeleteStory(storyID), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("deleting story %s: %w", storyID, err)
	}

	return resp, nil
}
