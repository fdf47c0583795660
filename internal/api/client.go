// Package api provides the SpendSmart REST client: a configured HTTP
// client with a mutable default authorization header, typed endpoint
// methods, and a hook invoked on failed responses so the session layer
// can decide whether to surface the expired-session prompt.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	requestTimeout = 15 * time.Second
	maxBodySize    = 1 << 20 // 1 MB

	// SkipPromptHeader marks a request as opted out of the
	// expired-session prompt, whatever the response says.
	SkipPromptHeader = "X-Skip-Token-Modal"
)

// ErrUnreachable indicates no response was received at all (connection
// refused, DNS failure, timeout). It is kept distinct from server-side
// errors so callers can say "cannot reach server" instead of blaming
// the backend.
var ErrUnreachable = errors.New("api: cannot reach server")

// Error is a non-2xx response decoded from the backend's error body.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// FailedResponse describes a failed request to the unauthorized hook.
type FailedResponse struct {
	Status     int
	Body       []byte
	SkipPrompt bool
}

// Client is the configured SpendSmart API client.
type Client struct {
	baseURL string
	http    *http.Client

	mu             sync.Mutex
	authHeader     string
	onUnauthorized func(FailedResponse)
}

// NewClient creates a client for the given API origin.
// The /api prefix is appended here, matching the backend's mount point.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL + "/api",
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetAuthToken installs token as the default bearer credential for all
// subsequent requests, or clears it when token is empty. The session
// store is the only caller.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" {
		c.authHeader = ""
		return
	}
	c.authHeader = "Bearer " + token
}

// OnUnauthorized registers the hook invoked for every failed response.
// The hook decides for itself whether the failure warrants the
// expired-session prompt.
func (c *Client) OnUnauthorized(fn func(FailedResponse)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

type requestOptions struct {
	skipPrompt bool
}

// Option adjusts a single request.
type Option func(*requestOptions)

// SkipPrompt opts this request out of the expired-session prompt.
// Used by change-password, where a 401 means "wrong current password",
// not "session expired".
func SkipPrompt() Option {
	return func(o *requestOptions) { o.skipPrompt = true }
}

// do performs one JSON request/response round trip. A nil body sends no
// payload; a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...Option) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ro.skipPrompt {
		req.Header.Set(SkipPromptHeader, "1")
	}

	c.mu.Lock()
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}
	hook := c.onUnauthorized
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if hook != nil {
			hook(FailedResponse{
				Status:     resp.StatusCode,
				Body:       respBody,
				SkipPrompt: ro.skipPrompt,
			})
		}
		return decodeError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("api: parsing response: %w", err)
		}
	}

	return nil
}

// decodeError turns a failed response into an *Error, tolerating
// non-JSON and unexpected body shapes.
func decodeError(status int, body []byte) error {
	apiErr := &Error{Status: status}

	var parsed struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Message
		if apiErr.Message == "" {
			apiErr.Message = parsed.Error
		}
	}

	return apiErr
}
