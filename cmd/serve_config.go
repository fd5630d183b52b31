package cmd

import (
	"fmt"
	"os"
	"time"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Productboard client settings
	Token          string
	BaseURL        string
	DefaultProduct string
	HTTPTimeout    time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration

	// Slack delivery settings
	SlackBotToken       string
	SlackDefaultChannel string
	SlackVerify         bool

	// Metrics settings
	Metrics MetricsServeConfig

	DebugMode bool
}

// MetricsServeConfig holds the dedicated metrics listener configuration.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// loadEnvIfEmpty loads an environment variable into a string pointer if
// it's empty. Flags win over the environment.
func loadEnvIfEmpty(target *string, envKey string) {
	if *target == "" {
		*target = os.Getenv(envKey)
	}
}

// LoadEnv fills unset secrets and overrides from the environment.
func (c *ServeConfig) LoadEnv() {
	loadEnvIfEmpty(&c.Token, "PRODUCTBOARD_API_TOKEN")
	loadEnvIfEmpty(&c.BaseURL, "PRODUCTBOARD_BASE_URL")
	loadEnvIfEmpty(&c.DefaultProduct, "PRODUCTBOARD_DEFAULT_PRODUCT")
	loadEnvIfEmpty(&c.SlackBotToken, "SLACK_BOT_TOKEN")
	loadEnvIfEmpty(&c.SlackDefaultChannel, "SLACK_DEFAULT_CHANNEL")
}

// Validate checks the configuration for problems a flag parser cannot
// catch.
func (c *ServeConfig) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("a Productboard API token is required (set PRODUCTBOARD_API_TOKEN or --token)")
	}
	switch c.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("invalid transport %q: must be %s, %s, or %s",
			c.Transport, transportStdio, transportSSE, transportStreamableHTTP)
	}
	if c.Transport != transportStdio && c.HTTPAddr == "" {
		return fmt.Errorf("--http-addr is required for the %s transport", c.Transport)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("--metrics-addr is required when metrics are enabled")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("--retry-attempts must be at least 1")
	}
	return nil
}
