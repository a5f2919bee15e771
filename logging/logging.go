package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/apikit/client"
)

// jsonPreviewPairs caps how many key-value pairs of a JSON response
// object make it into the log record.
const jsonPreviewPairs = 10

// textPreviewLen caps the length of non-JSON response previews.
const textPreviewLen = 200

// previewErrorMessage replaces the response preview when the body
// cannot be read or decoded.
const previewErrorMessage = "could not read response body"

// Recorder observes the latency of each call. metrics.Recorder
// implements it; failed is true when the call returned an error.
type Recorder interface {
	Record(elapsed time.Duration, failed bool)
}

// Client wraps a client.Client and emits one structured log record per
// call. It forwards the wrapped client's results unchanged.
type Client struct {
	api            *client.Client
	logger         zerolog.Logger
	logHeaders     bool
	logBodyPreview bool
	recorder       Recorder
}

// Option configures a logging Client.
type Option func(*Client)

// WithLogger sets the log sink. Defaults to the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLogHeaders controls whether merged request headers (redacted) are
// included in log records. Enabled by default.
func WithLogHeaders(enabled bool) Option {
	return func(c *Client) {
		c.logHeaders = enabled
	}
}

// WithLogBodyPreview controls whether request and response body
// previews are included in log records. Enabled by default.
func WithLogBodyPreview(enabled bool) Option {
	return func(c *Client) {
		c.logBodyPreview = enabled
	}
}

// WithRecorder attaches a latency recorder fed on every call.
func WithRecorder(recorder Recorder) Option {
	return func(c *Client) {
		c.recorder = recorder
	}
}

// Wrap decorates an existing client with logging.
func Wrap(api *client.Client, opts ...Option) *Client {
	c := &Client{
		api:            api,
		logger:         log.Logger,
		logHeaders:     true,
		logBodyPreview: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pipeline returns the wrapped client.
func (c *Client) Pipeline() *client.Client {
	return c.api
}

// Do executes the request through the wrapped client, measuring elapsed
// time on every exit path. Successful calls emit an "api_call" record;
// failures emit "api_call_failed" and return the error unchanged.
func (c *Client) Do(ctx context.Context, req *client.Request) (*client.Response, error) {
	start := time.Now()
	resp, err := c.api.Do(ctx, req)
	elapsed := time.Since(start)

	if c.recorder != nil {
		c.recorder.Record(elapsed, err != nil)
	}

	if err != nil {
		ev := c.logger.Error().
			Str("method", strings.ToUpper(req.Method)).
			Str("path", req.Path).
			Float64("elapsed_ms", roundMillis(elapsed)).
			Err(err)
		var respErr *client.ResponseError
		if errors.As(err, &respErr) {
			ev = ev.Int("status_code", respErr.StatusCode)
		}
		ev.Msg("api_call_failed")
		return nil, err
	}

	ev := c.logger.Info().
		Str("method", strings.ToUpper(req.Method)).
		Str("path", req.Path).
		Float64("elapsed_ms", roundMillis(elapsed))

	if len(req.Params) > 0 {
		ev = ev.Interface("params", req.Params)
	}

	if c.logHeaders {
		merged := client.MergeHeaders(c.api.DefaultHeaders(), req.Headers)
		ev = ev.Interface("request_headers", redactHeaders(merged))
	}

	if c.logBodyPreview && req.JSON != nil {
		ev = ev.Interface("request_json", redactJSONPayload(req.JSON))
	}

	if c.logBodyPreview {
		ev = addResponsePreview(ev, resp)
	}

	ev.Int("status_code", resp.StatusCode).Msg("api_call")
	return resp, nil
}

// Get performs a GET request through the instrumented pipeline.
func (c *Client) Get(ctx context.Context, path string, opts ...client.RequestOption) (*client.Response, error) {
	return c.Do(ctx, buildRequest(http.MethodGet, path, opts))
}

// Post performs a POST request through the instrumented pipeline.
func (c *Client) Post(ctx context.Context, path string, opts ...client.RequestOption) (*client.Response, error) {
	return c.Do(ctx, buildRequest(http.MethodPost, path, opts))
}

// Put performs a PUT request through the instrumented pipeline.
func (c *Client) Put(ctx context.Context, path string, opts ...client.RequestOption) (*client.Response, error) {
	return c.Do(ctx, buildRequest(http.MethodPut, path, opts))
}

// Delete performs a DELETE request through the instrumented pipeline.
func (c *Client) Delete(ctx context.Context, path string, opts ...client.RequestOption) (*client.Response, error) {
	return c.Do(ctx, buildRequest(http.MethodDelete, path, opts))
}

// Close releases the wrapped client's transport resources.
func (c *Client) Close() error {
	return c.api.Close()
}

func buildRequest(method, path string, opts []client.RequestOption) *client.Request {
	req := client.NewRequest(method, path)
	for _, opt := range opts {
		opt(req)
	}
	return req
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}

// addResponsePreview attaches response preview fields to the event. It
// never fails: decoding problems become a response_preview_error field.
func addResponsePreview(ev *zerolog.Event, resp *client.Response) *zerolog.Event {
	contentType := resp.GetHeader("Content-Type")
	ev = ev.Str("response_content_type", contentType)

	body, err := resp.GetBody()
	if err != nil {
		return ev.Str("response_preview_error", previewErrorMessage)
	}

	if strings.Contains(strings.ToLower(contentType), "application/json") {
		if !gjson.ValidBytes(body) {
			return ev.Str("response_preview_error", previewErrorMessage)
		}
		parsed := gjson.ParseBytes(body)
		if !parsed.IsObject() {
			return ev.Str("response_json_preview", nonObjectPlaceholder)
		}
		return ev.RawJSON("response_json_preview", jsonObjectPreview(parsed, jsonPreviewPairs))
	}

	text := string(body)
	if len(text) > textPreviewLen {
		text = text[:textPreviewLen] + "..."
	}
	return ev.Str("response_text_preview", text)
}

// jsonObjectPreview renders the first limit key-value pairs of a JSON
// object, in document order, as a JSON object.
func jsonObjectPreview(parsed gjson.Result, limit int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	parsed.ForEach(func(key, value gjson.Result) bool {
		if n == limit {
			return false
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key.String())
		if err != nil {
			return false
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.WriteString(value.Raw)
		n++
		return true
	})
	buf.WriteByte('}')
	return buf.Bytes()
}
