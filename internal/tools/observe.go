package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/logging"
	"github.com/stackline/mcp-productboard/internal/server"
)

// ToolHandler is the signature for MCP tool handlers that take a
// ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// WrapWithObservability wraps a tool handler with structured logging and
// tool-call metrics. MCP tool errors ride in the result rather than the
// Go error, so both are checked when classifying the outcome.
func WrapWithObservability(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := logging.WithTool(sc.Logger(), toolName)
		start := time.Now()

		result, err := handler(ctx, request, sc)
		duration := time.Since(start)

		status := logging.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = logging.StatusError
		}

		sc.RecordToolCall(ctx, toolName, status, duration)
		logger.Debug("tool call completed",
			logging.Status(status),
			slog.Duration(logging.KeyDuration, duration))

		return result, err
	}
}
