// Package gateway provides the authenticated JSON client for the Vuzo
// gateway REST API. Every other data-layer component talks through it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the hosted gateway endpoint.
	DefaultBaseURL = "https://api.vuzo.dev/v1"

	maxBodySize = 1 << 20 // 1 MB
)

// SessionProvider supplies the current bearer token. It is consulted fresh
// on every request, never cached across calls; ok=false means the call goes
// out anonymous and any 401 is the server's to make.
type SessionProvider interface {
	Token() (token string, ok bool)
}

// Client is the gateway transport. It does no retries: idempotency varies by
// endpoint (key creation must never be silently retried), so retry policy
// belongs to callers.
type Client struct {
	baseURL string
	session SessionProvider
	http    *http.Client
}

// NewClient creates a client for the given base URL. A nil session provider
// makes every call anonymous.
func NewClient(baseURL string, session SessionProvider) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		session: session,
		http:    &http.Client{},
	}
}

// BaseURL returns the configured gateway endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs an authenticated POST with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Delete performs an authenticated DELETE. Empty and 204 responses are fine.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("gateway: creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		if token, ok := c.session.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &TransportError{Op: "reading response for " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Status: resp.StatusCode,
			Detail: errorDetail(data, resp.Status),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("gateway: parsing %s response: %w", path, err)
	}
	return nil
}

// errorDetail extracts the server's {"detail": ...} message, falling back to
// the HTTP status line when the body isn't parseable JSON.
func errorDetail(body []byte, statusLine string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return statusLine
}
