package httpclient

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type (
	// configFile is the top-level structure of a configuration file.
	configFile struct {
		Clients map[string]ClientConfig `json:"clients" yaml:"clients"`
	}

	// ClientConfig holds the decoded configuration of a single client.
	// Embed it in your own app config structs for JSON or YAML
	// unmarshaling, then call [BuildOptions] to obtain options for
	// [NewClient].
	ClientConfig struct {
		// BaseURL is prepended to every request path.
		// Optional. Example: "https://api.example.com".
		BaseURL *string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
		// ConnectTimeout is the initial connect timeout.
		// Optional. Parsed via time.ParseDuration. Example: "2s".
		ConnectTimeout *string `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty"`
		// ReadTimeout is the per-read inactivity timeout.
		// Optional. Parsed via time.ParseDuration. Example: "8s".
		ReadTimeout *string `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
		// MaxRetries is the attempt budget of the retry loop.
		// Optional. Example: 3.
		MaxRetries *int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
		// Backoff configures connect timeout growth.
		// Optional. Example: {"strategy": "doubling", "max": "30s"}.
		Backoff *BackoffConfig `json:"backoff,omitempty" yaml:"backoff,omitempty"`
		// ElapsedTimeoutCheck enables the elapsed-time timeout check.
		// Optional. Example: true.
		ElapsedTimeoutCheck *bool `json:"elapsed_timeout_check,omitempty" yaml:"elapsed_timeout_check,omitempty"`
		// Headers are sent with every request.
		// Optional. Example: {"Accept": "application/json"}.
		Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
		// RequestIDHeader enables request IDs sent in the named header.
		// Optional. Example: "X-Request-ID".
		RequestIDHeader *string `json:"request_id_header,omitempty" yaml:"request_id_header,omitempty"`
	}

	// BackoffConfig holds connect timeout backoff configuration values.
	BackoffConfig struct {
		// Strategy is the backoff strategy name.
		// Required. One of: "doubling", "linear", "constant".
		Strategy *string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
		// Step is the increment of the linear strategy.
		// Required for "linear". Parsed via time.ParseDuration.
		Step *string `json:"step,omitempty" yaml:"step,omitempty"`
		// Max caps the connect timeout.
		// Optional. Parsed via time.ParseDuration. Example: "30s".
		Max *string `json:"max,omitempty" yaml:"max,omitempty"`
	}
)

// LoadConfig reads a configuration file and stores the client
// configurations in a [Registry]. Files ending in ".yaml" or ".yml" are
// parsed as YAML, anything else as JSON. Clients are not created until
// [GetClient] is called, so the caller can add code-level options.
//
// Every client configuration is validated eagerly so errors surface at
// load time.
func LoadConfig(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read config: %w", err)
	}

	var cfg configFile

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("httpclient: parse config: %w", err)
	}

	reg := NewRegistry()

	for name, cc := range cfg.Clients {
		if err = reg.Add(name, cc); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// BuildOptions converts a [ClientConfig] into options suitable for
// [NewClient].
func BuildOptions(cc *ClientConfig) ([]Option, error) {
	var opts []Option

	if cc.BaseURL != nil {
		opts = append(opts, WithBaseURL(*cc.BaseURL))
	}

	if cc.ConnectTimeout != nil {
		d, err := time.ParseDuration(*cc.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect_timeout: %w", err)
		}

		opts = append(opts, WithConnectTimeout(d))
	}

	if cc.ReadTimeout != nil {
		d, err := time.ParseDuration(*cc.ReadTimeout)
		if err != nil {
			return nil, fmt.Errorf("read_timeout: %w", err)
		}

		opts = append(opts, WithReadTimeout(d))
	}

	if cc.MaxRetries != nil {
		opts = append(opts, WithMaxRetries(*cc.MaxRetries))
	}

	if cc.Backoff != nil {
		backoffOpts, err := buildBackoffOptions(cc.Backoff)
		if err != nil {
			return nil, fmt.Errorf("backoff: %w", err)
		}

		opts = append(opts, backoffOpts...)
	}

	if cc.ElapsedTimeoutCheck != nil && *cc.ElapsedTimeoutCheck {
		opts = append(opts, WithElapsedTimeoutCheck())
	}

	for name, value := range cc.Headers {
		opts = append(opts, WithHeader(name, value))
	}

	if cc.RequestIDHeader != nil {
		opts = append(opts, WithRequestID(*cc.RequestIDHeader))
	}

	return opts, nil
}

func buildBackoffOptions(bc *BackoffConfig) ([]Option, error) {
	strategy, err := parseTimeoutBackoff(bc.Strategy, bc.Step)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithTimeoutBackoff(strategy)}

	if bc.Max != nil {
		maxTimeout, maxErr := time.ParseDuration(*bc.Max)
		if maxErr != nil {
			return nil, fmt.Errorf("max: %w", maxErr)
		}

		opts = append(opts, WithMaxConnectTimeout(maxTimeout))
	}

	return opts, nil
}

// parseTimeoutBackoff maps a strategy name (+ step for "linear") to a
// TimeoutBackoff.
//
//nolint:ireturn // strategy interface
func parseTimeoutBackoff(name, step *string) (TimeoutBackoff, error) {
	if name == nil {
		return nil, fmt.Errorf("parsing backoff strategy: strategy is required")
	}

	switch *name {
	case "doubling":
		return DoublingBackoff(), nil
	case "constant":
		return ConstantBackoff(), nil
	case "linear":
		if step == nil {
			return nil, fmt.Errorf("parsing backoff strategy: step is required for linear")
		}

		d, err := time.ParseDuration(*step)
		if err != nil {
			return nil, fmt.Errorf("step: %w", err)
		}

		return LinearBackoff(d), nil
	default:
		return nil, fmt.Errorf("unknown backoff strategy: %q", *name)
	}
}

// GetClient builds a Client from a named configuration of a config-loaded
// [Registry]. If the name is not found, a client is created with only the
// provided opts. User-provided options are applied after config options,
// so they take precedence.
func GetClient(reg *Registry, name string, opts ...Option) *Client {
	var allOpts []Option

	if cc, ok := reg.Config(name); ok {
		configOpts, err := BuildOptions(&cc)
		if err == nil {
			allOpts = append(allOpts, configOpts...)
		}
	}

	// User opts come last so they can override config values.
	allOpts = append(allOpts, opts...)

	return NewClient("", allOpts...)
}
