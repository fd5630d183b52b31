package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stackline/mcp-productboard/internal/instrumentation"
	"github.com/stackline/mcp-productboard/internal/logging"
	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/slack"
	"github.com/stackline/mcp-productboard/internal/tools/company"
	"github.com/stackline/mcp-productboard/internal/tools/feature"
	"github.com/stackline/mcp-productboard/internal/tools/note"
	"github.com/stackline/mcp-productboard/internal/tools/product"
	"github.com/stackline/mcp-productboard/internal/tools/release"
	"github.com/stackline/mcp-productboard/internal/tools/slackdelivery"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

func newServeCmd() *cobra.Command {
	var config ServeConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP Productboard server",
		Long: `Start the MCP Productboard server to expose Productboard features,
releases, notes, companies, and products as tools via the Model Context
Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

The Productboard API token is read from PRODUCTBOARD_API_TOKEN (a local
.env file is honored). When SLACK_BOT_TOKEN is set, Slack delivery tools
are registered as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			// A token on the command line leaks through process
			// listings, so nudge toward the environment.
			if cmd.Flags().Changed("token") {
				log.Printf("WARNING: API token %s provided via CLI flag may be visible in process listings (ps aux)",
					logging.SanitizeToken(config.Token))
				log.Printf("         Prefer the PRODUCTBOARD_API_TOKEN environment variable")
			}

			if err := config.Validate(); err != nil {
				return err
			}
			return runServe(config)
		},
	}

	// Productboard client flags
	cmd.Flags().StringVar(&config.Token, "token", "", "Productboard API token (prefer PRODUCTBOARD_API_TOKEN)")
	cmd.Flags().StringVar(&config.BaseURL, "base-url", "", "Productboard API base URL (default: https://api.productboard.com)")
	cmd.Flags().StringVar(&config.DefaultProduct, "default-product", "", "Product resolved when feature queries omit a product (default: Platform)")
	cmd.Flags().DurationVar(&config.HTTPTimeout, "http-timeout", productboard.DefaultHTTPTimeout, "Timeout per Productboard API request")
	cmd.Flags().IntVar(&config.RetryAttempts, "retry-attempts", productboard.DefaultRetryAttempts, "Attempts per Productboard API request")
	cmd.Flags().DurationVar(&config.RetryBaseDelay, "retry-base-delay", productboard.DefaultRetryBaseDelay, "Base delay between retries, doubled per attempt")
	cmd.Flags().BoolVar(&config.DebugMode, "debug", false, "Enable debug logging (default: false)")

	// Transport flags
	cmd.Flags().StringVar(&config.Transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&config.SSEEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&config.MessageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&config.HTTPEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Slack flags
	cmd.Flags().StringVar(&config.SlackDefaultChannel, "slack-channel", "", "Default Slack channel for deliveries (can also be set via SLACK_DEFAULT_CHANNEL)")
	cmd.Flags().BoolVar(&config.SlackVerify, "slack-verify", true, "Verify the Slack token against auth.test at startup")

	// Metrics flags
	cmd.Flags().BoolVar(&config.Metrics.Enabled, "metrics", false, "Serve Prometheus metrics on a dedicated listener")
	cmd.Flags().StringVar(&config.Metrics.Addr, "metrics-addr", ":9090", "Metrics listener address")

	return cmd
}

func runServe(config ServeConfig) error {
	logger := logging.Setup(config.DebugMode)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	provider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := provider.Shutdown(context.Background()); shutdownErr != nil {
			if config.Transport != transportStdio {
				log.Printf("Error during instrumentation shutdown: %v", shutdownErr)
			}
		}
	}()

	if provider.Enabled() {
		logger.Info("instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	// Feed request-level metrics from the API client without coupling it
	// to the instrumentation package.
	var observer productboard.RequestObserver
	if provider.Enabled() {
		metrics := provider.Metrics()
		observer = func(method, endpoint string, status int, duration time.Duration) {
			metrics.RecordUpstreamRequest(context.Background(), method, endpoint, status, duration)
		}
	}

	pbClient, err := productboard.NewClient(productboard.Config{
		Token:              config.Token,
		BaseURL:            config.BaseURL,
		DefaultProductName: config.DefaultProduct,
		HTTPTimeout:        config.HTTPTimeout,
		RetryAttempts:      config.RetryAttempts,
		RetryBaseDelay:     config.RetryBaseDelay,
		Logger:             logger,
		Observer:           observer,
	})
	if err != nil {
		return fmt.Errorf("failed to create Productboard client: %w", err)
	}

	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	if config.DefaultProduct != "" {
		serverConfig.DefaultProductName = config.DefaultProduct
	}

	serverContextOptions := []server.Option{
		server.WithProductboardClient(pbClient),
		server.WithLogger(logger),
		server.WithConfig(serverConfig),
		server.WithInstrumentation(provider),
	}

	// Slack delivery is opt-in: tools are only registered when a bot
	// token is present.
	var notifier *slack.Notifier
	if config.SlackBotToken != "" {
		notifier, err = slack.NewNotifier(slack.Config{
			BotToken:       config.SlackBotToken,
			DefaultChannel: config.SlackDefaultChannel,
			Logger:         logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create Slack notifier: %w", err)
		}
		if config.SlackVerify {
			verifyCtx, verifyCancel := context.WithTimeout(shutdownCtx, 10*time.Second)
			err = notifier.Verify(verifyCtx)
			verifyCancel()
			if err != nil {
				return fmt.Errorf("slack token verification failed: %w", err)
			}
		}
		serverContextOptions = append(serverContextOptions, server.WithSlackNotifier(notifier))
	}

	sc, err := server.NewServerContext(shutdownCtx, serverContextOptions...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := sc.Shutdown(); err != nil {
			log.Printf("Error during server context shutdown: %v", err)
		}
	}()

	mcpSrv := mcpserver.NewMCPServer(serverConfig.ServerName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register all tool categories
	if err := feature.RegisterFeatureTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register feature tools: %w", err)
	}
	if err := release.RegisterReleaseTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register release tools: %w", err)
	}
	if err := note.RegisterNoteTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register note tools: %w", err)
	}
	if err := company.RegisterCompanyTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register company tools: %w", err)
	}
	if err := product.RegisterProductTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register product tools: %w", err)
	}
	if notifier != nil {
		if err := slackdelivery.RegisterSlackTools(mcpSrv, sc); err != nil {
			return fmt.Errorf("failed to register Slack tools: %w", err)
		}
	}

	switch config.Transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportSSE:
		return runSSEServer(shutdownCtx, mcpSrv, config)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, config, provider, sc)
	default:
		return fmt.Errorf("unsupported transport type: %s", config.Transport)
	}
}
