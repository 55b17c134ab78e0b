// Package client is a Go client for the portal API. It carries the bearer
// token across requests, decodes the server's `{message}` error bodies and
// provides the ListController driving paginated list screens, including
// debounced search, cascading filters and stale response discarding.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/silsila-idreesia/portal/listing"
)

const defaultTimeout = 30 * time.Second

var (
	// ErrUnauthorized is returned when the server rejects the bearer token.
	// The client clears its token before returning it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned by Login when the configured limiter has
	// blocked the email and host pair, without a request being sent.
	ErrRateLimited = errors.New("too many failed login attempts")
)

// APIError is a non-2xx response decoded from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the portal API.
type Client struct {
	// BaseURL is the server root, without a trailing slash.
	BaseURL string

	// HTTPClient is the underlying transport. Defaults to a client with
	// a 30 second timeout.
	HTTPClient *http.Client

	// OnUnauthorized fires when any request comes back 401, after the
	// stored token has been cleared. Callers use it to redirect to login.
	OnUnauthorized func()

	// Limiter, when set, gates Login calls per email and host pair.
	Limiter *RateLimiter

	mu    sync.Mutex
	token string
}

// New creates a client for the API served at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.token
}

// SetToken installs a bearer token, e.g. one restored from storage.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

// LoginRequest is the credentials payload for Login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
}

// Login authenticates against /api/login and stores the returned token.
// When a Limiter is configured, blocked keys fail fast with ErrRateLimited
// and failed attempts are recorded against the email and host pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	host := c.limiterHost()
	if c.Limiter != nil && !c.Limiter.Allowed(req.Email, host) {
		return nil, ErrRateLimited
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		if c.Limiter != nil && isStatus(err, http.StatusUnauthorized) {
			c.Limiter.Failure(req.Email, host)
		}

		return nil, err
	}

	if c.Limiter != nil {
		c.Limiter.Success(req.Email, host)
	}

	c.SetToken(resp.Token)

	return &resp, nil
}

// Logout revokes the current token server side and clears it locally.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	c.SetToken("")

	return err
}

// Get fetches a single resource into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post creates a resource from body, decoding the response into out when
// out is non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put updates a resource from body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// List fetches one page of a list endpoint with the given parameters.
func List[T any](ctx context.Context, c *Client, path string, p listing.Params) (listing.Envelope[T], error) {
	var env listing.Envelope[T]

	query := Values(p).Encode()
	if query != "" {
		path += "?" + query
	}

	err := c.do(ctx, http.MethodGet, path, nil, &env)

	return env, err
}

// Values renders list parameters as a query string, omitting defaults.
func Values(p listing.Params) url.Values {
	values := url.Values{}

	if p.Page > 1 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.PerPage != 0 && p.PerPage != listing.DefaultPerPage {
		values.Set("per_page", strconv.Itoa(p.PerPage))
	}

	if p.Sort != "" {
		values.Set("sort", p.Sort)

		if p.Dir == listing.Descending {
			values.Set("dir", string(p.Dir))
		}
	}

	if p.Search != "" {
		values.Set("search", p.Search)
	}

	for name, value := range p.Filters {
		if value != "" {
			values.Set(name, value)
		}
	}

	return values
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// A rejected token means the session is gone. Failed logins carry no
	// token and fall through to the regular error decoding instead.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.SetToken("")

		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}

		return &statusError{status: resp.StatusCode, err: ErrUnauthorized}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Message = body.Message
		}

		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck

		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError wraps a sentinel error with the HTTP status that caused it.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }

func (e *statusError) Unwrap() error { return e.err }

func isStatus(err error, status int) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.status == status
	}

	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status == status
	}

	return false
}

func (c *Client) limiterHost() string {
	if u, err := url.Parse(c.BaseURL); err == nil && u.Host != "" {
		return u.Host
	}

	return c.BaseURL
}
