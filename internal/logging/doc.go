// Package logging provides slog attribute helpers and sanitization
// utilities for consistent structured logging across the server.
package logging
