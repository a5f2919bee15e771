package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout applies when no WithTimeout option is given.
const defaultTimeout = 10 * time.Second

// Client is an HTTP API client bound to a base URL, with default
// headers, optional auth, and status-code error translation.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	headers        map[string]string
	auth           Auth
	raiseForStatus bool
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a new client for the given base URL. A single
// trailing slash on the base URL is stripped, so the stored base URL
// never ends with "/".
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		headers:        make(map[string]string),
		raiseForStatus: true,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets the per-request timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHeaders adds multiple default headers sent on every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for key, value := range headers {
			c.headers[key] = value
		}
	}
}

// WithAuth sets the credential applied to every outgoing request.
func WithAuth(auth Auth) ClientOption {
	return func(c *Client) {
		c.auth = auth
	}
}

// WithRaiseForStatus controls whether non-2xx responses are returned as
// a ResponseError (true, the default) or passed through to the caller.
func WithRaiseForStatus(raise bool) ClientOption {
	return func(c *Client) {
		c.raiseForStatus = raise
	}
}

// WithHTTPClient replaces the underlying transport. The client's
// timeout option no longer applies; configure the provided http.Client
// directly.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DefaultHeaders returns a copy of the client's default headers.
func (c *Client) DefaultHeaders() map[string]string {
	headers := make(map[string]string, len(c.headers))
	for key, value := range c.headers {
		headers[key] = value
	}
	return headers
}

// BuildURL normalizes a request path. Absolute http:// and https://
// URLs are returned unchanged; otherwise a leading "/" is ensured.
// The result is a stable fixed point: BuildURL(BuildURL(p)) == BuildURL(p).
func BuildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// resolveURL produces the full URL for a path: absolute URLs bypass the
// base URL entirely, relative paths are joined to it.
func (c *Client) resolveURL(path string) string {
	built := BuildURL(path)
	if strings.HasPrefix(built, "http://") || strings.HasPrefix(built, "https://") {
		return built
	}
	return c.baseURL + built
}

// MergeHeaders overlays per-request headers on default headers.
// Per-request values win on key collision; keys are matched exactly as
// provided, with no case folding.
func MergeHeaders(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for key, value := range defaults {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

// Do executes a request and classifies the outcome.
//
// Transport failures (DNS, connection refused, timeout) are returned as
// a *RequestError wrapping the original cause. When raise-for-status is
// enabled, responses with a status code outside [200, 300) are returned
// as a *ResponseError carrying the status, final URL, and a safe body
// preview. All other responses are returned unchanged.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resolvedURL := c.resolveURL(req.Path)
	merged := MergeHeaders(c.headers, req.Headers)

	httpReq, err := req.build(ctx, resolvedURL, merged)
	if err != nil {
		return nil, &RequestError{URL: resolvedURL, Err: err}
	}
	if c.auth != nil {
		c.auth.Apply(httpReq)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RequestError{URL: resolvedURL, Err: err}
	}

	bodyBytes, readErr := io.ReadAll(httpResp.Body)
	httpResp.Body.Close()

	resp := &Response{
		StatusCode:   httpResp.StatusCode,
		Status:       httpResp.Status,
		URL:          httpResp.Request.URL.String(),
		Headers:      httpResp.Header,
		Body:         http.NoBody,
		ResponseTime: time.Since(start),
		rawBody:      bodyBytes,
		parsed:       readErr == nil,
	}
	if readErr != nil {
		return nil, &RequestError{URL: resolvedURL, Err: readErr}
	}

	if c.raiseForStatus && !resp.IsSuccess() {
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			URL:        resp.URL,
			Preview:    bodyPreview(resp),
		}
	}

	return resp, nil
}

// Get performs a GET request against the given path.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodGet, path).applyOptions(opts))
}

// Post performs a POST request against the given path.
func (c *Client) Post(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, path).applyOptions(opts))
}

// Put performs a PUT request against the given path.
func (c *Client) Put(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPut, path).applyOptions(opts))
}

// Delete performs a DELETE request against the given path.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodDelete, path).applyOptions(opts))
}

// Close releases idle connections held by the underlying transport.
// It is safe to call more than once.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
