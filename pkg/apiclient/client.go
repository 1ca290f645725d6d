// Package apiclient is the HTTP transport for the gym booking API. It owns
// the session token hand-off: the token store is injected, read on every
// outgoing request, and written on login.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError carries a server-produced failure. Error() returns the server's
// message verbatim so callers can surface it to the user unmodified.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Config configures a Client. Zero values fall back to sensible defaults.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore

	// Booking window the week-count endpoint is queried with.
	StartTime string // default "06:00"
	EndTime   string // default "23:00"

	// Login retry policy. Login is side-effect free on failure, so a blind
	// bounded retry is acceptable there (and only there).
	LoginAttempts   int           // total attempts, default 3
	LoginRetryDelay time.Duration // delay between attempts, default 1.5s

	// Sleep is injectable for tests; defaults to a context-aware timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Client talks to the gym booking API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	startTime string
	endTime   string

	loginAttempts int
	loginDelay    time.Duration
	sleep         func(ctx context.Context, d time.Duration) error
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:       cfg.BaseURL,
		http:          cfg.HTTPClient,
		tokens:        cfg.Tokens,
		startTime:     cfg.StartTime,
		endTime:       cfg.EndTime,
		loginAttempts: cfg.LoginAttempts,
		loginDelay:    cfg.LoginRetryDelay,
		sleep:         cfg.Sleep,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if c.tokens == nil {
		c.tokens = &memoryTokenStore{}
	}
	if c.startTime == "" {
		c.startTime = "06:00"
	}
	if c.endTime == "" {
		c.endTime = "23:00"
	}
	if c.loginAttempts <= 0 {
		c.loginAttempts = 3
	}
	if c.loginDelay <= 0 {
		c.loginDelay = 1500 * time.Millisecond
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). Non-2xx responses become
// *APIError carrying the server's error field.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.tokens.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = resp.Status
	}
	return apiErr
}
