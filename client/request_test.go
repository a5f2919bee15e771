package client

import (
	"context"
	"io"
	"testing"
)

func TestRequest_Builders(t *testing.T) {
	req := NewRequest("get", "items").
		WithHeader("X-A", "1").
		WithHeaders(map[string]string{"X-B": "2"}).
		WithQueryParam("limit", "10").
		WithQueryParams(map[string]string{"page": "3"})

	if req.Headers["X-A"] != "1" || req.Headers["X-B"] != "2" {
		t.Errorf("Unexpected headers %v", req.Headers)
	}
	if req.Params.Get("limit") != "10" || req.Params.Get("page") != "3" {
		t.Errorf("Unexpected params %v", req.Params)
	}
}

func TestRequest_BuildJSONPrecedence(t *testing.T) {
	req := NewRequest("POST", "/items").
		WithRawBody([]byte("raw")).
		WithJSON(map[string]string{"a": "b"})

	httpReq, err := req.build(context.Background(), "http://example.com/items", nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	body, _ := io.ReadAll(httpReq.Body)
	if string(body) != `{"a":"b"}` {
		t.Errorf("JSON should take precedence over raw body, got %q", string(body))
	}
	if httpReq.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %q", httpReq.Header.Get("Content-Type"))
	}
}

func TestRequest_BuildRespectsExplicitContentType(t *testing.T) {
	req := NewRequest("POST", "/items").WithJSON(map[string]string{"a": "b"})

	httpReq, err := req.build(context.Background(), "http://example.com/items",
		map[string]string{"Content-Type": "application/vnd.custom+json"})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := httpReq.Header.Get("Content-Type"); got != "application/vnd.custom+json" {
		t.Errorf("Explicit content type must not be overwritten, got %q", got)
	}
}

func TestRequest_BuildRawBody(t *testing.T) {
	req := NewRequest("PUT", "/items").WithRawBody([]byte("payload"))

	httpReq, err := req.build(context.Background(), "http://example.com/items", nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	body, _ := io.ReadAll(httpReq.Body)
	if string(body) != "payload" {
		t.Errorf("Unexpected raw body %q", string(body))
	}
	if httpReq.Header.Get("Content-Type") != "" {
		t.Errorf("Raw bodies must not get an implicit content type")
	}
}

func TestRequest_BuildMergesQueryIntoURL(t *testing.T) {
	req := NewRequest("GET", "/items").WithQueryParam("b", "2")

	httpReq, err := req.build(context.Background(), "http://example.com/items?a=1", nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := httpReq.URL.RawQuery; got != "a=1&b=2" {
		t.Errorf("Unexpected query %q", got)
	}
}

func TestRequest_BuildInvalidJSON(t *testing.T) {
	req := NewRequest("POST", "/items").WithJSON(make(chan int))

	if _, err := req.build(context.Background(), "http://example.com/items", nil); err == nil {
		t.Error("Expected marshal error for unencodable JSON value")
	}
}
