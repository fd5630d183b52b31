package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// runStdioServer serves MCP over stdin/stdout until the stream closes.
// Stdout carries the protocol frames, so all logging stays on stderr
// (see logging.Setup) and nothing is printed here on exit.
func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("stdio transport stopped: %w", err)
	}
	return nil
}
