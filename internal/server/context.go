package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stackline/mcp-productboard/internal/instrumentation"
	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/slack"
)

// DefaultShutdownTimeout bounds graceful shutdown of HTTP listeners.
const DefaultShutdownTimeout = 10 * time.Second

// Config holds server-level settings shared by all tools.
type Config struct {
	// ServerName identifies the MCP server to clients.
	ServerName string

	// Version is the build version, injected from cmd.
	Version string

	// DefaultProductName is the product resolved when feature queries
	// omit an explicit scope.
	DefaultProductName string
}

// NewDefaultConfig returns a Config with defaults applied.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:         "mcp-productboard",
		Version:            "dev",
		DefaultProductName: productboard.DefaultProductName,
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and
// lifecycle management.
type ServerContext struct {
	pbClient productboard.Client
	notifier *slack.Notifier
	provider *instrumentation.Provider
	logger   *slog.Logger
	config   *Config

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a ServerContext with default values, then
// applies the given functional options.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

func (sc *ServerContext) validate() error {
	if sc.pbClient == nil {
		return ErrMissingClient
	}
	return nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Productboard returns the Productboard API client.
func (sc *ServerContext) Productboard() productboard.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.pbClient
}

// Notifier returns the optional Slack notifier, nil when Slack delivery
// is not configured.
func (sc *ServerContext) Notifier() *slack.Notifier {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.notifier
}

// SlackEnabled reports whether Slack delivery tools should be registered.
func (sc *ServerContext) SlackEnabled() bool {
	return sc.Notifier() != nil
}

// Instrumentation returns the instrumentation provider, which may be nil
// or disabled.
func (sc *ServerContext) Instrumentation() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.provider
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// RecordToolCall forwards tool invocation metrics to the instrumentation
// provider. Safe to call whether or not instrumentation is enabled.
func (sc *ServerContext) RecordToolCall(ctx context.Context, tool, status string, duration time.Duration) {
	sc.Instrumentation().Metrics().RecordToolCall(ctx, tool, status, duration)
}

// RecordSlackDelivery forwards Slack delivery metrics.
func (sc *ServerContext) RecordSlackDelivery(ctx context.Context, status string) {
	sc.Instrumentation().Metrics().RecordSlackDelivery(ctx, status)
}

// Shutdown releases resources held by the context. Safe to call more
// than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()

	if sc.provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := sc.provider.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
