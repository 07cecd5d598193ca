package api

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

// ErrTransport wraps failures where no HTTP response was received at all:
// DNS, dial, timeout. Callers show a generic notice for these.
var ErrTransport = errors.New("api: transport failure")

// DefaultTimeout matches the app's fixed request deadline.
const DefaultTimeout = 20 * time.Second

// Error is a non-2xx backend response. Message is extracted from the JSON
// body ("message" or "error" field) and is intended to be shown verbatim.
type Error struct {
	Status  int
	Message string
	Body    []byte
}

// Error describes the error operation and its observable behavior.
func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an [Error] with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// TokenSource yields the current bearer token, or "" when unauthenticated.
// It runs on every request; the engine backs it with the persisted store.
type TokenSource func(ctx context.Context) (string, error)

// RequestHook runs before every outgoing request.
type RequestHook func(ctx context.Context, req *http.Request) error

// ResponseHook observes every received response, success or error.
type ResponseHook func(ctx context.Context, resp *http.Response)

// Config defines a public type used by famtask APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Scheme is prepended (with a space) to the Authorization value when
	// non-empty. Empty means raw token, the observed backend contract.
	Scheme string
	// Client optionally overrides the underlying transport; its Timeout is
	// left untouched when set.
	Client *http.Client
}

// Client is the API gateway client. Configure it during initialization;
// Do is safe for concurrent use afterwards.
type Client struct {
	base           *url.URL
	http           *http.Client
	scheme         string
	tokenSource    TokenSource
	onUnauthorized func(ctx context.Context)
	reqHooks       []RequestHook
	respHooks      []ResponseHook
}

// New creates a Client for the given base endpoint.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("api: base URL required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api: unsupported base URL scheme %q", base.Scheme)
	}

	httpClient := cfg.Client
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:   base,
		http:   httpClient,
		scheme: cfg.Scheme,
	}, nil
}

// SetTokenSource installs the per-request token lookup.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

// SetOnUnauthorized installs the callback invoked once per 401 response.
func (c *Client) SetOnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// AddRequestHook appends a hook run before every outgoing request.
func (c *Client) AddRequestHook(h RequestHook) {
	c.reqHooks = append(c.reqHooks, h)
}

// AddResponseHook appends a hook run on every received response.
func (c *Client) AddResponseHook(h ResponseHook) {
	c.respHooks = append(c.respHooks, h)
}

// Do executes one request. body is JSON-encoded when non-nil; out, when
// non-nil, receives the decoded 2xx response body. Error responses return
// *Error; transport failures wrap ErrTransport. No retries.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.resolve(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokenSource != nil {
		token, err := c.tokenSource(ctx)
		if err == nil && token != "" {
			value := token
			if c.scheme != "" {
				value = c.scheme + " " + token
			}
			req.Header.Set("Authorization", value)
		}
	}

	for _, hook := range c.reqHooks {
		if err := hook(ctx, req); err != nil {
			return fmt.Errorf("api: request hook: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	for _, hook := range c.respHooks {
		hook(ctx, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return &Error{
			Status:  resp.StatusCode,
			Message: extractMessage(data, resp.StatusCode),
			Body:    data,
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}

	return nil
}

// Get describes the get operation and its observable behavior.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post describes the post operation and its observable behavior.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Delete describes the delete operation and its observable behavior.
func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, body, out)
}

func (c *Client) resolve(path string) *url.URL {
	ref := &url.URL{Path: path}
	if !strings.HasPrefix(path, "/") {
		ref.Path = "/" + path
	}
	joined := *c.base
	joined.Path = strings.TrimRight(c.base.Path, "/") + ref.Path
	joined.RawQuery = ""
	return &joined
}

func extractMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(status)
}
