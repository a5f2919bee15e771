package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/apikit/client"
	"github.com/wesleyorama2/apikit/config"
	"github.com/wesleyorama2/apikit/internal/output"
	"github.com/wesleyorama2/apikit/logging"
	"github.com/wesleyorama2/apikit/metrics"
)

// addCommonFlags registers the flags shared by every verb command.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().StringArrayP("query", "q", []string{}, "Query parameters as key=value (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output and structured request logging")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().StringP("config", "c", "", "Path to a client config file (JSON or YAML)")
	cmd.Flags().Bool("stats", false, "Print latency statistics after the call")
}

// runCall executes one verb command. withBody enables the --data flag
// handling for POST and PUT.
func runCall(cmd *cobra.Command, method string, args []string, withBody bool) {
	rawURL := args[0]
	headers, _ := cmd.Flags().GetStringArray("header")
	queries, _ := cmd.Flags().GetStringArray("query")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor, _ := cmd.Flags().GetBool("no-color")
	configPath, _ := cmd.Flags().GetString("config")
	stats, _ := cmd.Flags().GetBool("stats")

	var base *client.Client
	var path string
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		var extra []client.ClientOption
		if cmd.Flags().Changed("timeout") {
			extra = append(extra, client.WithTimeout(timeout))
		}
		base = cfg.NewClient(extra...)
		// Absolute URLs bypass the configured base URL; relative paths
		// resolve against it.
		path = rawURL
	} else {
		baseURL, p := parseURL(rawURL)
		path = p
		base = client.NewClient(baseURL, client.WithTimeout(timeout))
	}

	req := client.NewRequest(method, path)
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			req.WithHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
	for _, query := range queries {
		parts := strings.SplitN(query, "=", 2)
		if len(parts) == 2 {
			req.WithQueryParam(parts[0], parts[1])
		}
	}
	if withBody {
		data, _ := cmd.Flags().GetString("data")
		if data != "" {
			if gjson.Valid(data) {
				var v interface{}
				if err := json.Unmarshal([]byte(data), &v); err == nil {
					req.WithJSON(v)
				}
			} else {
				req.WithRawBody([]byte(data))
			}
		}
	}

	logger := zerolog.Nop()
	if verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	opts := []logging.Option{logging.WithLogger(logger)}
	var recorder *metrics.Recorder
	if stats {
		recorder = metrics.NewRecorder()
		opts = append(opts, logging.WithRecorder(recorder))
	}
	c := logging.Wrap(base, opts...)
	defer c.Close()

	if !noColor {
		noColor = !output.IsTerminal(os.Stdout)
	}
	formatter := output.NewFormatter(verbose, noColor)

	fmt.Print(formatter.FormatRequest(req, base.BaseURL()))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.Do(ctx, req)
	if err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	fmt.Print(formatter.FormatResponse(resp))
	if recorder != nil {
		fmt.Print(formatter.FormatSnapshot(recorder.Snapshot()))
	}
}
