// Package api is the HTTP transport to the weather/account service. Each
// method issues exactly one request; nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the default HTTP request timeout
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read
const maxBodySize = 10 << 20

// HeaderRequestID carries the per-request correlation id
const HeaderRequestID = "X-Request-ID"

// Endpoints holds the request paths of the service
type Endpoints struct {
	Register      string
	Login         string
	Logout        string
	Weather       string
	History       string
	UpdateProfile string
}

// DefaultEndpoints returns the service's standard paths
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Register:      "/register",
		Login:         "/login",
		Logout:        "/logout",
		Weather:       "/weather",
		History:       "/history",
		UpdateProfile: "/update-profile",
	}
}

// Client talks to the weather/account service
type Client struct {
	baseURL    string
	userAgent  string
	endpoints  Endpoints
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header value
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithEndpoints overrides the request paths
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		c.endpoints = e
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: "weather-cli",
		endpoints: DefaultEndpoints(),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoints returns the configured request paths
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// request describes one call to the service
type request struct {
	method string
	path   string
	token  string
	body   any
	// accept decides whether a status code is a success
	accept func(int) bool
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}

func isCreated(code int) bool {
	return code == http.StatusCreated
}

// do sends r and returns the body of an accepted response
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var reqBody io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + r.path
	req, err := http.NewRequestWithContext(ctx, r.method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	log := c.logger.With("request_id", requestID, "method", r.method, "path", r.path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("request failed", "error", err)
		return nil, &ConnectionError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: fmt.Errorf("read response: %w", err)}
	}

	log.Debug("request completed", "status", resp.StatusCode, "duration", time.Since(start))

	accept := r.accept
	if accept == nil {
		accept = is2xx
	}
	if !accept(resp.StatusCode) {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
