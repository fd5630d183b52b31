package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stackline/mcp-productboard/internal/instrumentation"
)

// MetricsServer serves the Prometheus scrape endpoint on a dedicated
// listener, isolated from MCP traffic.
type MetricsServer struct {
	httpServer *http.Server
}

// MetricsServerConfig configures the dedicated metrics listener.
type MetricsServerConfig struct {
	// Addr is the listen address, e.g. ":9090".
	Addr string

	// Provider supplies the Prometheus registry handler.
	Provider *instrumentation.Provider
}

// NewMetricsServer creates a metrics server.
func NewMetricsServer(cfg MetricsServerConfig) (*MetricsServer, error) {
	if cfg.Addr == "" {
		return nil, errors.New("metrics server address is required")
	}
	if cfg.Provider == nil {
		return nil, errors.New("instrumentation provider is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", cfg.Provider.MetricsHandler())

	return &MetricsServer{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Start blocks serving the metrics endpoint until Shutdown.
func (m *MetricsServer) Start() error {
	return m.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.httpServer.Shutdown(ctx)
}
