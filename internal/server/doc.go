// Package server provides the ServerContext dependency container for the
// MCP server, health check endpoints, and the dedicated metrics listener.
package server
