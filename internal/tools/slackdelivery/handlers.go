package slackdelivery

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/logging"
	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

func handlePostMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	notifier := sc.Notifier()
	if notifier == nil {
		return mcp.NewToolResultError("Slack delivery is not configured. Set SLACK_BOT_TOKEN and restart the server."), nil
	}

	text := tools.StringArg(args, "text")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	timestamp, err := notifier.PostMessage(ctx,
		tools.StringArg(args, "channel"),
		text,
		tools.StringArg(args, "threadTs"),
	)
	if err != nil {
		sc.RecordSlackDelivery(ctx, logging.StatusError)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to post message: %v", err)), nil
	}
	sc.RecordSlackDelivery(ctx, logging.StatusSuccess)

	return tools.NewJSONToolResult(map[string]any{
		"ok": true,
		"ts": timestamp,
	})
}

func handlePostToolResult(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	notifier := sc.Notifier()
	if notifier == nil {
		return mcp.NewToolResultError("Slack delivery is not configured. Set SLACK_BOT_TOKEN and restart the server."), nil
	}

	title := tools.StringArg(args, "title")
	payload := tools.StringArg(args, "payload")
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	if payload == "" {
		return mcp.NewToolResultError("payload is required"), nil
	}

	// The ack reaction brackets the delivery on the triggering user
	// message, so the requester sees work in progress.
	ackChannel := tools.StringArg(args, "ackChannel")
	ackTimestamp := tools.StringArg(args, "ackTimestamp")
	if ackChannel != "" && ackTimestamp != "" {
		notifier.Acknowledge(ctx, ackChannel, ackTimestamp)
		defer notifier.Unacknowledge(ctx, ackChannel, ackTimestamp)
	}

	timestamp, err := notifier.PostToolResult(ctx,
		tools.StringArg(args, "channel"),
		title,
		payload,
		tools.StringArg(args, "threadTs"),
	)
	if err != nil {
		sc.RecordSlackDelivery(ctx, logging.StatusError)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to post tool result: %v", err)), nil
	}
	sc.RecordSlackDelivery(ctx, logging.StatusSuccess)

	return tools.NewJSONToolResult(map[string]any{
		"ok": true,
		"ts": timestamp,
	})
}
