package slackdelivery

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools/testdata"
)

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(),
		server.WithProductboardClient(&testdata.MockClient{}),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err, "failed to create server context")
	return sc
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent in result, got %T", result.Content[0])
	return textContent.Text
}

func TestHandlePostMessageWithoutNotifier(t *testing.T) {
	sc := newTestContext(t)

	result, err := handlePostMessage(context.Background(), callRequest(map[string]any{
		"text": "hello",
	}), sc)
	require.NoError(t, err)
	require.True(t, result.IsError, "expected error result when Slack is not configured")
	assert.Contains(t, resultText(t, result), "SLACK_BOT_TOKEN")
}

func TestHandlePostToolResultValidation(t *testing.T) {
	sc := newTestContext(t)

	// The notifier check runs before argument validation, so a missing
	// notifier dominates even with bad arguments.
	result, err := handlePostToolResult(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
