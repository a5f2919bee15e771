package client

import (
	"strings"

	"github.com/tidwall/gjson"
)

// PreviewKind classifies the content of a body preview.
type PreviewKind string

const (
	// PreviewJSON indicates the body parsed as JSON; Preview.JSON holds it.
	PreviewJSON PreviewKind = "json"
	// PreviewText indicates a plain-text preview; Preview.Text holds it.
	PreviewText PreviewKind = "text"
	// PreviewUnknown indicates the body could not be decoded; no content.
	PreviewUnknown PreviewKind = "unknown"
)

// maxTextPreviewLen bounds text previews attached to response errors.
const maxTextPreviewLen = 500

// Preview is a bounded, best-effort summary of a response body, meant
// for errors and logs rather than full content. Construction never
// fails: undecodable bodies produce a preview of kind PreviewUnknown.
type Preview struct {
	Kind PreviewKind
	JSON gjson.Result
	Text string
}

// String renders the preview for error messages and plain logs.
func (p Preview) String() string {
	switch p.Kind {
	case PreviewJSON:
		return p.JSON.Raw
	case PreviewText:
		return p.Text
	default:
		return "<unknown>"
	}
}

// makeBodyPreview builds a preview from a declared content type and the
// raw body bytes. readErr carries any failure from reading the body; it
// is absorbed into a PreviewUnknown result rather than propagated.
func makeBodyPreview(contentType string, body []byte, readErr error) Preview {
	if readErr != nil {
		return Preview{Kind: PreviewUnknown}
	}

	if strings.Contains(strings.ToLower(contentType), "application/json") {
		if !gjson.ValidBytes(body) {
			return Preview{Kind: PreviewUnknown}
		}
		return Preview{Kind: PreviewJSON, JSON: gjson.ParseBytes(body)}
	}

	text := string(body)
	if len(text) > maxTextPreviewLen {
		text = text[:maxTextPreviewLen-3] + "..."
	}
	return Preview{Kind: PreviewText, Text: text}
}

// bodyPreview summarizes a response for ResponseError construction.
func bodyPreview(resp *Response) Preview {
	body, err := resp.GetBody()
	return makeBodyPreview(resp.GetHeader("Content-Type"), body, err)
}
