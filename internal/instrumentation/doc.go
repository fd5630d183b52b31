// Package instrumentation wires OpenTelemetry metrics and tracing for the
// server: MCP tool call counters, Productboard API request metrics, HTTP
// transport metrics, and Slack delivery counters, exported through a
// Prometheus registry served on a dedicated metrics listener.
//
// Instrumentation is disabled by default (INSTRUMENTATION_ENABLED=true to
// enable) and a nil Metrics recorder is always safe to call.
package instrumentation
