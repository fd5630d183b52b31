// Package middleware provides HTTP middleware for the MCP server's HTTP
// transports.
package middleware
