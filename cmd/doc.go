// Package cmd provides the command-line interface for mcp-productboard.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//
// The CLI runs the serve command when no subcommand is specified, so the
// binary can be used directly as an MCP server entry in agent configs.
//
// Command Structure:
//
//	mcp-productboard [flags]               # Starts the MCP server (default)
//	mcp-productboard serve [flags]         # Explicitly starts the MCP server
//	mcp-productboard version               # Shows version information
//	mcp-productboard help [command]        # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-productboard serve --transport stdio           # Default STDIO transport
//	mcp-productboard serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-productboard serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// Configuration is flag-first with environment fallbacks. The
// Productboard API token comes from PRODUCTBOARD_API_TOKEN; Slack
// delivery is enabled by setting SLACK_BOT_TOKEN. A .env file in the
// working directory is loaded at startup.
package cmd
