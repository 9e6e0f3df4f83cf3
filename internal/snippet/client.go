package snippet

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
)

// API defines the snippet operations the client application depends on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	FetchSnippet(ctx context.Context) (Snippet, error)
	Submit(ctx context.Context, sub Submission) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the snippet HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL        = "http://localhost:8080"
	defaultUserAgent      = "snipday/0.1"
	defaultRequestTimeout = 5 * time.Second

	// DefaultErrorMessage is reported when a failed response carries no text.
	DefaultErrorMessage = "Something went wrong"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given base URL or host:port value.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// RequestOptions configures a single call made through Do.
type RequestOptions struct {
	Method string      // empty means GET
	Header http.Header // merged over the default headers
	Body   any         // []byte and string are sent as-is, anything else is JSON-encoded
}

// APIError is returned when the server answers with a non-success status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusCode extracts the HTTP status from an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// FetchSnippet retrieves the current snippet.
func (c *Client) FetchSnippet(ctx context.Context) (Snippet, error) {
	if c == nil {
		return Snippet{}, fmt.Errorf("client is nil")
	}
	return Fetch[Snippet](ctx, c, "/snippet", RequestOptions{})
}

// Submit posts a replacement snippet.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.Do(ctx, "/submit", RequestOptions{Method: http.MethodPost, Body: sub}, nil)
}

// Fetch issues a request and decodes the JSON response as T. An empty body
// yields the zero value of T.
func Fetch[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (T, error) {
	var out T
	if err := c.Do(ctx, path, opts, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Do sends a request to path relative to the base URL. When dest is non-nil
// and the response body is not empty, the body is decoded into dest.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for name, values := range opts.Header {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func encodeBody(body any) (io.Reader, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(v), nil
	case string:
		return strings.NewReader(v), nil
	default:
		buf, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(buf), nil
	}
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", base)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
