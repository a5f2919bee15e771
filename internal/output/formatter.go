package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wesleyorama2/apikit/client"
	"github.com/wesleyorama2/apikit/metrics"
)

// Formatter renders requests, responses, and statistics as text.
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		scheme:  scheme,
	}
}

// FormatRequest formats an outgoing request for display
func (f *Formatter) FormatRequest(req *client.Request, baseURL string) string {
	var buf strings.Builder

	fullURL := client.BuildURL(req.Path)
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = baseURL + fullURL
	}
	if len(req.Params) > 0 {
		fullURL += "?" + req.Params.Encode()
	}

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(strings.ToUpper(req.Method)),
		f.scheme.URL.Sprint(fullURL)))

	if f.Verbose && len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for key, value := range req.Headers {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.scheme.HeaderKey.Sprint(key),
				f.scheme.HeaderValue.Sprint(value)))
		}
	}

	switch {
	case req.JSON != nil:
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			buf.WriteString(fmt.Sprintf("  Body: %v\n", req.JSON))
		} else {
			buf.WriteString("  Body: " + formatJSONString(string(encoded)) + "\n")
		}
	case req.Body != nil:
		buf.WriteString("  Body: " + formatJSONString(string(req.Body)) + "\n")
	}

	return buf.String()
}

// FormatResponse formats a response for display
func (f *Formatter) FormatResponse(resp *client.Response) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusError
	if resp.IsSuccess() {
		statusColor = f.scheme.StatusOK
	} else if resp.IsRedirect() {
		statusColor = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		statusColor.Sprint(resp.Status),
		resp.GetResponseTimeMillis()))

	if f.Verbose {
		buf.WriteString("  Headers:\n")
		for key, values := range resp.Headers {
			for _, value := range values {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.scheme.HeaderKey.Sprint(key),
					f.scheme.HeaderValue.Sprint(value)))
			}
		}
	}

	body, err := resp.GetBodyAsString()
	if err == nil && body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatError formats a request failure for display
func (f *Formatter) FormatError(err error) string {
	return f.scheme.Error.Sprintf("✗ %v", err) + "\n"
}

// FormatSnapshot formats a latency snapshot for display
func (f *Formatter) FormatSnapshot(snap metrics.Snapshot) string {
	var buf strings.Builder
	buf.WriteString(f.scheme.Highlight.Sprint("Stats:") + "\n")
	buf.WriteString(fmt.Sprintf("  Calls:    %d (%d failed)\n", snap.Count, snap.Failures))
	buf.WriteString(fmt.Sprintf("  Min:      %.2fms\n", snap.Min))
	buf.WriteString(fmt.Sprintf("  Mean:     %.2fms\n", snap.Mean))
	buf.WriteString(fmt.Sprintf("  p50:      %.2fms\n", snap.P50))
	buf.WriteString(fmt.Sprintf("  p90:      %.2fms\n", snap.P90))
	buf.WriteString(fmt.Sprintf("  p99:      %.2fms\n", snap.P99))
	buf.WriteString(fmt.Sprintf("  Max:      %.2fms\n", snap.Max))
	return buf.String()
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return prettyJSON.String()
}
