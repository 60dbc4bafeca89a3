// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Configuration constants for the gateway client.
const (
	// DefaultBaseURL is the gateway origin used when config supplies none.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout is the default timeout for gateway requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// refreshPath is the endpoint that renews the session cookie. A 401 from
// this endpoint must never trigger another refresh.
const refreshPath = "/auth/refresh-token"

// newTransport builds the shared transport.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
func newTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// Envelope is the gateway's uniform response wrapper. Success is a
// pointer because some endpoints (logout) answer with a bare message and
// no success member; absence means the status code alone decides.
type Envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    *Meta           `json:"meta,omitempty"`
}

// Ok reports whether the envelope marks the call successful. A missing
// success member counts as success.
func (e *Envelope) Ok() bool {
	return e.Success == nil || *e.Success
}

// Meta carries pagination details on list responses.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Page bundles a decoded list payload with its pagination meta.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// Client talks to the bank administration gateway.
//
// The zero value is not usable; construct with NewClient. All methods are
// safe for concurrent use: state lives in the cookie jar, which is
// internally synchronized.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// onSessionExpired runs when a refresh attempt fails, meaning the
	// session is gone for good. Wired to the session store's Logout.
	onSessionExpired func()
}

// NewClient creates a gateway client rooted at the given origin. The /api
// prefix is appended here so callers pass bare paths like "/auth/login".
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid gateway URL: %w", err)
	}

	// SECURITY: Credentials live in HTTP-only cookies, never in client
	// memory. The jar is the sole credential store.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Transport: newTransport(),
			Jar:       jar,
			Timeout:   DefaultTimeout,
		},
	}, nil
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// OnSessionExpired registers the hook that runs when the session cannot be
// refreshed.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// =============================================================================
// API: Request/Response Logging (without sensitive data)
// =============================================================================

// logRequest logs a gateway request without exposing sensitive data.
// API: Secure logging - no headers (cookies) and no body (credentials).
func logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs a gateway response with duration.
// API: Secure logging - only status code and duration, never the body.
func logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// =============================================================================
// REQUEST PIPELINE
// =============================================================================

// do performs one gateway call: marshal, send, refresh-retry on 401,
// decode the envelope into out (which may be nil for calls whose payload
// the caller ignores). The returned Envelope is valid whenever err is nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*Envelope, error) {
	env, err := c.doOnce(ctx, method, path, body)

	// One silent refresh, one retry. The auth endpoints are exempt: a
	// 401 from login means bad credentials, and one from refresh means
	// the session is gone (recursing there would never terminate).
	if errors.Is(err, ErrAuthFailed) && !strings.HasPrefix(path, "/auth/") {
		if refreshErr := c.refresh(ctx); refreshErr != nil {
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			return nil, fmt.Errorf("%w: %s", ErrSessionExpired, path)
		}
		env, err = c.doOnce(ctx, method, path, body)
	}
	if err != nil {
		return nil, err
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to parse response data: %w", err)
		}
	}
	return env, nil
}

// doOnce performs a single request with no reauthentication.
func (c *Client) doOnce(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "banktui/0.2.0")
	req.Header.Set("X-Request-ID", uuid.NewString())

	logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The gateway never answered: transport failure, retryable.
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	logResponse(resp, time.Since(start))

	raw, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return nil, fmt.Errorf("failed to parse envelope: %w", err)
			}
			// A non-JSON error body means a proxy or load balancer
			// answered, not the gateway. Treat it as unreachable so the
			// UI offers a retry instead of a dead-end error.
			return nil, fmt.Errorf("%w: gateway returned status %d with a non-JSON body",
				ErrUnavailable, resp.StatusCode)
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Ok() {
		return &env, nil
	}
	return nil, c.rejectionError(resp.StatusCode, &env)
}

// refresh renews the session cookie.
func (c *Client) refresh(ctx context.Context) error {
	_, err := c.doOnce(ctx, http.MethodGet, refreshPath, nil)
	return err
}

// rejectionError maps a non-success envelope to the error taxonomy.
func (c *Client) rejectionError(status int, env *Envelope) error {
	apiErr := &APIError{
		Status:  status,
		Message: env.Message,
		Fields:  decodeFieldErrors(env.Errors),
	}
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, apiErr.Message)
	default:
		return apiErr
	}
}

// decodeFieldErrors accepts the two shapes the gateway emits for the
// errors member: a {"field": "message"} object or a list of
// {"field","message"} pairs.
func decodeFieldErrors(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return asMap
	}

	var asList []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		out := make(map[string]string, len(asList))
		for _, fe := range asList {
			out[fe.Field] = fe.Message
		}
		return out
	}
	return nil
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}
