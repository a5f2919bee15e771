// Package config loads API client configuration from JSON or YAML
// files, validates it against a JSON Schema, and constructs clients.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/apikit/client"
	"github.com/wesleyorama2/apikit/logging"
)

// defaultTimeoutSeconds applies when the file does not set a timeout.
const defaultTimeoutSeconds = 10.0

// Config describes one API client: where it points, what it sends by
// default, and how it reports.
type Config struct {
	BaseURL        string            `json:"baseUrl" yaml:"baseUrl"`
	Timeout        float64           `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth           *AuthConfig       `json:"auth,omitempty" yaml:"auth,omitempty"`
	RaiseForStatus *bool             `json:"raiseForStatus,omitempty" yaml:"raiseForStatus,omitempty"`
	Logging        LoggingConfig     `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// AuthConfig selects a credential type. Type is "basic" (username +
// password) or "bearer" (token).
type AuthConfig struct {
	Type     string `json:"type" yaml:"type"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Token    string `json:"token,omitempty" yaml:"token,omitempty"`
}

// LoggingConfig controls what the logging decorator includes.
type LoggingConfig struct {
	Headers     *bool `json:"headers,omitempty" yaml:"headers,omitempty"`
	BodyPreview *bool `json:"bodyPreview,omitempty" yaml:"bodyPreview,omitempty"`
}

// Load reads, validates, and decodes a configuration file. The format
// is chosen by extension: .yaml/.yml parse as YAML, everything else as
// JSON. Defaults are applied after validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML config: %w", err)
		}
	}

	return Parse(data)
}

// Parse validates and decodes a JSON configuration document.
func Parse(data []byte) (*Config, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeoutSeconds
	}
}

// TimeoutDuration returns the configured timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions() []client.ClientOption {
	opts := []client.ClientOption{
		client.WithTimeout(c.TimeoutDuration()),
	}
	if len(c.Headers) > 0 {
		opts = append(opts, client.WithHeaders(c.Headers))
	}
	if c.Auth != nil {
		switch c.Auth.Type {
		case "basic":
			opts = append(opts, client.WithAuth(client.BasicAuth{
				Username: c.Auth.Username,
				Password: c.Auth.Password,
			}))
		case "bearer":
			opts = append(opts, client.WithAuth(client.BearerToken(c.Auth.Token)))
		}
	}
	if c.RaiseForStatus != nil {
		opts = append(opts, client.WithRaiseForStatus(*c.RaiseForStatus))
	}
	return opts
}

// NewClient constructs a client from the configuration. Extra options
// are applied after (and can override) the configured ones.
func (c *Config) NewClient(extra ...client.ClientOption) *client.Client {
	opts := append(c.ClientOptions(), extra...)
	return client.NewClient(c.BaseURL, opts...)
}

// NewLoggedClient constructs a logging-decorated client from the
// configuration, honoring the logging section's flags.
func (c *Config) NewLoggedClient(extra ...logging.Option) *logging.Client {
	opts := []logging.Option{}
	if c.Logging.Headers != nil {
		opts = append(opts, logging.WithLogHeaders(*c.Logging.Headers))
	}
	if c.Logging.BodyPreview != nil {
		opts = append(opts, logging.WithLogBodyPreview(*c.Logging.BodyPreview))
	}
	opts = append(opts, extra...)
	return logging.Wrap(c.NewClient(), opts...)
}
