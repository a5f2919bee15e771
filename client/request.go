package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request represents a logical HTTP request before it is resolved
// against a client's base URL and default headers.
//
// Recognized options are enumerated explicitly: query parameters,
// per-request headers, a structured JSON body, or a raw body. When both
// JSON and Body are set, JSON takes precedence; callers should set one.
type Request struct {
	Method  string
	Path    string
	Params  url.Values
	Headers map[string]string
	JSON    interface{}
	Body    []byte
}

// NewRequest creates a new request with the given method and path.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Params:  make(url.Values),
		Headers: make(map[string]string),
	}
}

// WithHeader adds a header to the request.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithHeaders adds multiple headers to the request.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.Headers[key] = value
	}
	return r
}

// WithQueryParam adds a query parameter to the request.
func (r *Request) WithQueryParam(key, value string) *Request {
	r.Params.Add(key, value)
	return r
}

// WithQueryParams adds multiple query parameters to the request.
func (r *Request) WithQueryParams(params map[string]string) *Request {
	for key, value := range params {
		r.Params.Add(key, value)
	}
	return r
}

// WithJSON sets a structured JSON body on the request.
func (r *Request) WithJSON(v interface{}) *Request {
	r.JSON = v
	return r
}

// WithRawBody sets a raw payload on the request.
func (r *Request) WithRawBody(body []byte) *Request {
	r.Body = body
	return r
}

// RequestOption configures a request built by one of the verb helpers
// (Get, Post, Put, Delete).
type RequestOption func(*Request)

// Params sets multiple query parameters.
func Params(params map[string]string) RequestOption {
	return func(r *Request) { r.WithQueryParams(params) }
}

// Query adds a single query parameter.
func Query(key, value string) RequestOption {
	return func(r *Request) { r.WithQueryParam(key, value) }
}

// Header adds a single per-request header.
func Header(key, value string) RequestOption {
	return func(r *Request) { r.WithHeader(key, value) }
}

// Headers adds multiple per-request headers.
func Headers(headers map[string]string) RequestOption {
	return func(r *Request) { r.WithHeaders(headers) }
}

// JSON sets a structured JSON body.
func JSON(v interface{}) RequestOption {
	return func(r *Request) { r.WithJSON(v) }
}

// RawBody sets a raw payload.
func RawBody(body []byte) RequestOption {
	return func(r *Request) { r.WithRawBody(body) }
}

func (r *Request) applyOptions(opts []RequestOption) *Request {
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// build constructs an http.Request from the logical request. The
// resolved URL has already been computed by the client; headers is the
// merged default + per-request header map.
func (r *Request) build(ctx context.Context, resolvedURL string, headers map[string]string) (*http.Request, error) {
	reqURL, err := url.Parse(resolvedURL)
	if err != nil {
		return nil, err
	}

	// Merge query parameters from the request over any already present
	// in the URL.
	if len(r.Params) > 0 {
		query := reqURL.Query()
		for key, values := range r.Params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		reqURL.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	var jsonBody bool
	switch {
	case r.JSON != nil:
		encoded, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(encoded)
		jsonBody = true
	case r.Body != nil:
		bodyReader = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(r.Method), reqURL.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if jsonBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
