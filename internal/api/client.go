package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	// maxErrorBody bounds how much of a failed response is read for a message.
	maxErrorBody = 64 << 10
)

// Client talks to the content backend's REST API. It is safe for concurrent
// use. Authenticated calls take the bearer token explicitly so one Client can
// serve every admin session.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every call. A hung backend then fails with KindNetwork
// instead of blocking the request forever.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at baseURL, for example
// "https://content-writer-backend.onrender.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// AssetBase is the host that serves uploaded images: the API root without its
// trailing "/api" segment.
func (c *Client) AssetBase() string {
	return strings.TrimSuffix(c.baseURL.String(), "/api")
}

// ResolveAsset turns a backend-relative image path into an absolute URL.
// Absolute URLs and data URIs are returned unchanged; empty stays empty.
func (c *Client) ResolveAsset(p string) string {
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"),
		strings.HasPrefix(p, "//"), strings.HasPrefix(p, "data:"):
		return p
	case strings.HasPrefix(p, "/"):
		return c.AssetBase() + p
	default:
		return c.AssetBase() + "/" + p
	}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// request describes one backend call.
type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path, token string, payload any) (request, error) {
	r := request{method: method, path: path, token: token}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return r, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		r.body = bytes.NewReader(b)
		r.contentType = "application/json"
	}
	return r, nil
}

// do performs the call and decodes a 2xx JSON answer into out (if non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	op := r.method + " " + r.path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path), r.body)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend call failed", "op", op, "error", err)
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.logger.DebugContext(ctx, "backend call", "op", op, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Kind:    classify(resp.StatusCode),
			Op:      op,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Error{Kind: KindNetwork, Op: op, Err: err}
		}
		return &Error{Kind: KindMalformed, Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// errorMessage extracts {"message": ...} or {"error": ...} from an error body.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		for _, m := range []string{payload.Message, payload.Error, payload.Msg} {
			if m != "" {
				return m
			}
		}
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "<") {
		return ""
	}
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
