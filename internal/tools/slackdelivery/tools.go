package slackdelivery

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

// RegisterSlackTools registers the Slack delivery tools with the MCP
// server. Call only when a notifier is configured.
func RegisterSlackTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	postMessageTool := mcp.NewTool("slack_post_message",
		mcp.WithDescription(`Post a message to a Slack channel.

When channel is omitted the configured default channel is used. Pass
threadTs to reply in a thread instead of the channel.`),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Message text (Slack mrkdwn)"),
		),
		mcp.WithString("channel",
			mcp.Description("Channel id or name (optional, default channel used if omitted)"),
		),
		mcp.WithString("threadTs",
			mcp.Description("Thread timestamp to reply under (optional)"),
		),
	)
	s.AddTool(postMessageTool, tools.WrapWithObservability("slack_post_message", handlePostMessage, sc))

	postToolResultTool := mcp.NewTool("slack_post_tool_result",
		mcp.WithDescription(`Post a tool result payload to Slack as a titled code block.

Large payloads are truncated to fit Slack's message limits. When
ackChannel and ackTimestamp point at the user message that triggered the
work, an acknowledgement reaction is shown while posting and removed
afterwards.`),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title rendered above the payload"),
		),
		mcp.WithString("payload",
			mcp.Required(),
			mcp.Description("Payload to render in a code block, typically tool output JSON"),
		),
		mcp.WithString("channel",
			mcp.Description("Channel id or name (optional, default channel used if omitted)"),
		),
		mcp.WithString("threadTs",
			mcp.Description("Thread timestamp to reply under (optional)"),
		),
		mcp.WithString("ackChannel",
			mcp.Description("Channel of the message to react to while posting (optional)"),
		),
		mcp.WithString("ackTimestamp",
			mcp.Description("Timestamp of the message to react to while posting (optional)"),
		),
	)
	s.AddTool(postToolResultTool, tools.WrapWithObservability("slack_post_tool_result", handlePostToolResult, sc))

	return nil
}
