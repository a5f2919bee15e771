package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/apikit/client"
)

// lastRecord parses the most recent JSON log line emitted into buf.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines, "expected at least one log record")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &record))
	return record
}

func newLoggedClient(t *testing.T, serverURL string, buf *bytes.Buffer, clientOpts []client.ClientOption, opts ...Option) *Client {
	t.Helper()
	logger := zerolog.New(buf)
	base := client.NewClient(serverURL, clientOpts...)
	t.Cleanup(func() { base.Close() })
	return Wrap(base, append([]Option{WithLogger(logger)}, opts...)...)
}

func TestLoggedClient_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf,
		[]client.ClientOption{client.WithHeader("X-Key", "abc")})

	resp, err := c.Post(context.Background(), "/items",
		client.JSON(map[string]interface{}{"password": "p1", "name": "n"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	record := lastRecord(t, &buf)
	assert.Equal(t, "api_call", record["message"])
	assert.Equal(t, "POST", record["method"])
	assert.Equal(t, "/items", record["path"])
	assert.Equal(t, float64(201), record["status_code"])
	assert.Contains(t, record, "elapsed_ms")

	requestJSON, ok := record["request_json"].(map[string]interface{})
	require.True(t, ok, "request_json should be an object")
	assert.Equal(t, RedactedValue, requestJSON["password"])
	assert.Equal(t, "n", requestJSON["name"])

	headers, ok := record["request_headers"].(map[string]interface{})
	require.True(t, ok, "request_headers should be an object")
	assert.Equal(t, "abc", headers["X-Key"])

	preview, ok := record["response_json_preview"].(map[string]interface{})
	require.True(t, ok, "response_json_preview should be an object")
	assert.Equal(t, float64(1), preview["id"])
	assert.Equal(t, "application/json", record["response_content_type"])
}

func TestLoggedClient_HeaderRedactionCaseInsensitive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf,
		[]client.ClientOption{client.WithHeader("AUTHORIZATION", "Bearer secret")})

	_, err := c.Get(context.Background(), "/x",
		client.Header("Proxy-Authorization", "also-secret"),
		client.Header("X-Safe", "visible"))
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	headers := record["request_headers"].(map[string]interface{})
	assert.Equal(t, RedactedValue, headers["AUTHORIZATION"], "key should be preserved, value redacted")
	assert.Equal(t, RedactedValue, headers["Proxy-Authorization"])
	assert.Equal(t, "visible", headers["X-Safe"])
}

func TestLoggedClient_NonObjectJSONPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf, nil)

	_, err := c.Post(context.Background(), "/x", client.JSON([]int{1, 2, 3}))
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	assert.Equal(t, nonObjectPlaceholder, record["request_json"])
}

func TestLoggedClient_ParamsVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf, nil)

	_, err := c.Get(context.Background(), "/x", client.Query("token", "visible-in-params"))
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	params := record["params"].(map[string]interface{})
	values := params["token"].([]interface{})
	assert.Equal(t, "visible-in-params", values[0], "params are logged without redaction")
}

func TestLoggedClient_TextPreviewTruncation(t *testing.T) {
	long := strings.Repeat("x", 300)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(long))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf, nil)

	_, err := c.Get(context.Background(), "/x")
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	preview := record["response_text_preview"].(string)
	assert.Len(t, preview, textPreviewLen+3)
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Equal(t, long[:textPreviewLen], preview[:textPreviewLen])
}

func TestLoggedClient_JSONPreviewCapsAtTenPairs(t *testing.T) {
	// 12 keys in a fixed document order.
	body := `{"k01":1,"k02":2,"k03":3,"k04":4,"k05":5,"k06":6,"k07":7,"k08":8,"k09":9,"k10":10,"k11":11,"k12":12}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf, nil)

	_, err := c.Get(context.Background(), "/x")
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	preview := record["response_json_preview"].(map[string]interface{})
	assert.Len(t, preview, jsonPreviewPairs)
	assert.Contains(t, preview, "k01")
	assert.Contains(t, preview, "k10")
	assert.NotContains(t, preview, "k11")
}

func TestLoggedClient_NonObjectJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[1,2,3]`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf, nil)

	_, err := c.Get(context.Background(), "/x")
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	assert.Equal(t, nonObjectPlaceholder, record["response_json_preview"])
}

func TestLoggedClient_UndecodableJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{broken`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf, nil)

	_, err := c.Get(context.Background(), "/x")
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	assert.Equal(t, previewErrorMessage, record["response_preview_error"])
}

func TestLoggedClient_DisabledPreviews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf,
		[]client.ClientOption{client.WithHeader("X-Key", "abc")},
		WithLogHeaders(false), WithLogBodyPreview(false))

	_, err := c.Post(context.Background(), "/x", client.JSON(map[string]interface{}{"password": "p"}))
	require.NoError(t, err)

	record := lastRecord(t, &buf)
	assert.NotContains(t, record, "request_headers")
	assert.NotContains(t, record, "request_json")
	assert.NotContains(t, record, "response_json_preview")
	assert.NotContains(t, record, "response_content_type")
	assert.Equal(t, "api_call", record["message"])
}

func TestLoggedClient_FailedCallEmitsRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, server.URL, &buf, nil)

	_, err := c.Get(context.Background(), "/failing")
	require.Error(t, err)

	record := lastRecord(t, &buf)
	assert.Equal(t, "api_call_failed", record["message"])
	assert.Equal(t, "GET", record["method"])
	assert.Equal(t, "/failing", record["path"])
	assert.Equal(t, float64(502), record["status_code"])
	assert.Contains(t, record, "elapsed_ms")
	assert.Contains(t, record, "error")
}

func TestLoggedClient_NetworkFailureEmitsRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	var buf bytes.Buffer
	c := newLoggedClient(t, serverURL, &buf,
		[]client.ClientOption{client.WithTimeout(2 * time.Second)})

	_, err := c.Get(context.Background(), "/unreachable")
	require.Error(t, err)

	record := lastRecord(t, &buf)
	assert.Equal(t, "api_call_failed", record["message"])
	assert.NotContains(t, record, "status_code", "network failures have no status")
}

func TestLoggedClient_RecorderFed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	rec := &stubRecorder{}
	c := newLoggedClient(t, server.URL, &buf, nil, WithRecorder(rec))

	_, err := c.Get(context.Background(), "/x")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
	assert.False(t, rec.lastFailed)
}

type stubRecorder struct {
	calls      int
	lastFailed bool
}

func (s *stubRecorder) Record(elapsed time.Duration, failed bool) {
	s.calls++
	s.lastFailed = failed
}
