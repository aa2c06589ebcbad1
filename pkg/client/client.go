package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the default root URL of the ArchiveStream API.
const DefaultBaseURL = "http://localhost:3001"

// APIVersionPath is appended to the root URL to form the API endpoint.
const APIVersionPath = "/api/v1"

// DefaultTimeout bounds a single request/response round-trip.
const DefaultTimeout = 30 * time.Second

// Client is an ArchiveStream API client.
//
// A Client is immutable after New returns and is safe for concurrent use.
type Client struct {
	rootURL    string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets the service root URL. Trailing slashes are stripped.
func WithBaseURL(rootURL string) Option {
	return func(c *Client) {
		c.rootURL = strings.TrimRight(rootURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
// Its Timeout is left untouched unless WithTimeout is also given.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the overall per-request timeout.
// Zero or negative values disable the client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = max(d, 0)
	}
}

// New creates a new ArchiveStream API client.
// No network activity happens here; a bad address surfaces on first use.
func New(opts ...Option) *Client {
	c := &Client{
		rootURL: DefaultBaseURL,
		timeout: -1,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.httpClient == nil:
		timeout := DefaultTimeout
		if c.timeout >= 0 {
			timeout = c.timeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	case c.timeout >= 0:
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	c.baseURL = c.rootURL + APIVersionPath
	return c
}

// BaseURL returns the effective API endpoint, e.g. "http://localhost:3001/api/v1".
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RootURL returns the service root the API endpoint was derived from.
func (c *Client) RootURL() string {
	return c.rootURL
}

// get performs a GET request against base+path and returns the raw JSON body.
func (c *Client) get(ctx context.Context, op, base, path string, query url.Values) (Record, error) {
	u, err := url.Parse(base + path)
	if err != nil {
		return nil, &TransportError{Op: op, URL: base + path, Err: fmt.Errorf("parsing URL: %w", err)}
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	body, _, err := c.send(ctx, op, u.String(), path, 0)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &DecodeError{Op: op, Body: body, Err: decodeCause(body)}
	}
	return Record(body), nil
}

// send issues a GET to target and returns the body of a 2xx response. A
// positive limit caps how many body bytes are read.
func (c *Client) send(ctx context.Context, op, target, path string, limit int64) ([]byte, *http.Response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, &TransportError{Op: op, URL: target, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("op", op),
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, nil, &TransportError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, &TransportError{Op: op, URL: target, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("HTTP request returned error",
			slog.String("op", op),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, nil, &ServerError{Op: op, StatusCode: resp.StatusCode, Body: body}
	}

	slog.Debug("HTTP request completed",
		slog.String("op", op),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return body, resp, nil
}

// getList performs a GET request whose body must be a JSON array and splits
// it into one Record per element.
func (c *Client) getList(ctx context.Context, op, base, path string, query url.Values) ([]Record, error) {
	rec, err := c.get(ctx, op, base, path, query)
	if err != nil {
		return nil, err
	}
	var items []Record
	if err := json.Unmarshal(rec, &items); err != nil {
		return nil, &DecodeError{Op: op, Body: rec, Err: fmt.Errorf("expected JSON array: %w", err)}
	}
	if items == nil {
		// "null" body
		items = []Record{}
	}
	return items, nil
}

// decodeCause reproduces the decoder's complaint about an invalid body.
func decodeCause(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return fmt.Errorf("invalid JSON")
}
