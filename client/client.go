package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 65 * time.Second

// Client is the single chokepoint for folio API communication. It attaches
// the bearer token to authenticated calls, normalizes every failure into an
// APIError, and reacts to session invalidation exactly once.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	session SessionStore

	// onUnauthorized runs once per session invalidation (HTTP 401), after the
	// session store has been cleared. The guard resets on the next login.
	onUnauthorized func()
	invalidated    atomic.Bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithOnUnauthorized registers the session-invalidation callback.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client against baseURL. The session store is required; use
// NewMemorySession for stateless callers.
func New(baseURL string, session SessionStore, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session exposes the injected session store.
func (c *Client) Session() SessionStore { return c.session }

// reqOpts carries per-call request options.
type reqOpts struct {
	// public marks a call that must never carry the bearer token.
	public bool
	query  url.Values
	// form, when set, is sent urlencoded instead of a JSON body.
	form url.Values
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do issues one HTTP call. body (if non-nil) is JSON-encoded; out (if
// non-nil) receives the decoded 2xx response body. Every failure returns an
// *APIError; callers never see raw transport errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts reqOpts) error {
	var reader io.Reader
	contentType := ""
	switch {
	case opts.form != nil:
		reader = strings.NewReader(opts.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case body != nil:
		buf, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: "failed to encode request body", Detail: err.Error()}
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, opts.query), reader)
	if err != nil {
		return &APIError{Message: "failed to build request", Detail: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req, opts.public)

	return c.send(req, out)
}

// doMultipart issues a multipart upload carrying a single file field.
func (c *Client) doMultipart(ctx context.Context, path, filename string, file io.Reader, out any, opts reqOpts) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return &APIError{Message: "failed to build upload", Detail: err.Error()}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &APIError{Message: "failed to read upload payload", Detail: err.Error()}
	}
	if err := mw.Close(); err != nil {
		return &APIError{Message: "failed to finalize upload", Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path, opts.query), &buf)
	if err != nil {
		return &APIError{Message: "failed to build request", Detail: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req, opts.public)

	return c.send(req, out)
}

// authorize attaches the bearer token unless the call is public. Public
// endpoints must never receive credentials.
func (c *Client) authorize(req *http.Request, public bool) {
	if public {
		return
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: "could not reach server", Detail: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: "failed to read response", Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized()
		}
		return normalizeError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Message: "failed to decode response", Detail: err.Error()}
		}
	}
	return nil
}

// handleUnauthorized clears the session and fires the callback. The CAS guard
// makes the side effect run once even when several in-flight requests all see
// 401 at the same time; the guard resets on the next successful login.
func (c *Client) handleUnauthorized() {
	if !c.invalidated.CompareAndSwap(false, true) {
		return
	}
	_ = c.session.Clear()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// sessionRestored re-arms the 401 guard after a fresh login.
func (c *Client) sessionRestored() {
	c.invalidated.Store(false)
}
