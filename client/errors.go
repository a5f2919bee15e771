package client

import "fmt"

// APIError is the common interface satisfied by all errors produced by
// this package. Use errors.As with *RequestError or *ResponseError to
// distinguish the two kinds.
type APIError interface {
	error
	apiError()
}

// RequestError represents a failure that occurred before a response was
// received: DNS, connection refused, timeout, or any other transport
// level problem. The original cause is available via Unwrap.
type RequestError struct {
	// URL is the resolved URL the request was sent to.
	URL string
	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("error while requesting %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) apiError() {}

// ResponseError represents a non-success HTTP response. It is returned
// only when the client is configured to raise for status (the default).
type ResponseError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// URL is the final URL of the response, after any redirects.
	URL string
	// Preview is a bounded, best-effort summary of the response body.
	Preview Preview
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP %d error (url=%s)", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d error", e.StatusCode)
}

func (e *ResponseError) apiError() {}
