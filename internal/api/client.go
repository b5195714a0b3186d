package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/colegioapp/colegio/internal/log"
)

// TokenSource supplies the bearer credential for outbound requests.
// An empty token means no credential is attached.
type TokenSource interface {
	Token() string
}

// Client is the single choke point for every call to the school backend.
// It attaches the bearer credential, maps failures to the error taxonomy,
// and runs the auth-failure hook on 401 before the error reaches the caller.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens        TokenSource
	onAuthFailure func()
	logger        *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the credential source consulted per request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthFailureHook sets the callback invoked when the backend returns 401.
// The hook runs before the AuthError is returned, so session teardown is
// always complete by the time callers observe the failure.
func WithAuthFailureHook(hook func()) Option {
	return func(c *Client) { c.onAuthFailure = hook }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a backend API client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs a request and decodes a 2xx body into target (when non-nil).
// Every outbound call in the package funnels through here.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	fullURL := c.BaseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed before a response was received",
			"method", method, "url", fullURL, "error", err.Error())
		return &NetworkError{URL: fullURL, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: fullURL, Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Teardown first, then surface the error. The ordering is part of
		// the client contract: callers may rely on the session being gone.
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		_, msg, _ := flattenFieldErrors(respBody)
		return &AuthError{Message: msg}

	case resp.StatusCode >= 500:
		return &ServerError{StatusCode: resp.StatusCode, Message: string(respBody)}

	case resp.StatusCode >= 400:
		fields, msg, ok := flattenFieldErrors(respBody)
		if !ok {
			msg = string(respBody)
		}
		return &ValidationError{StatusCode: resp.StatusCode, Fields: fields, Message: msg}
	}

	if target != nil {
		if err := json.Unmarshal(respBody, target); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
	}
	return nil
}

// get fetches path into target.
func (c *Client) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, target)
}

// post sends body to path and decodes the response into target.
func (c *Client) post(ctx context.Context, path string, body, target interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, target)
}

// put sends body to path and decodes the response into target.
func (c *Client) put(ctx context.Context, path string, body, target interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, target)
}

// delete removes the resource at path.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
