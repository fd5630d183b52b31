package server

import (
	"errors"
	"log/slog"

	"github.com/stackline/mcp-productboard/internal/instrumentation"
	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/slack"
)

// Validation errors for ServerContext construction.
var (
	ErrMissingClient = errors.New("productboard client is required")
	ErrMissingLogger = errors.New("logger cannot be nil")
	ErrMissingConfig = errors.New("config cannot be nil")
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithProductboardClient sets the Productboard API client.
func WithProductboardClient(client productboard.Client) Option {
	return func(sc *ServerContext) error {
		if client == nil {
			return ErrMissingClient
		}
		sc.pbClient = client
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the server configuration.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithVersion sets the build version in the configuration.
func WithVersion(version string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.Version = version
		return nil
	}
}

// WithSlackNotifier enables Slack delivery tools. A nil notifier leaves
// Slack disabled.
func WithSlackNotifier(notifier *slack.Notifier) Option {
	return func(sc *ServerContext) error {
		sc.notifier = notifier
		return nil
	}
}

// WithInstrumentation sets the instrumentation provider.
func WithInstrumentation(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.provider = provider
		return nil
	}
}
