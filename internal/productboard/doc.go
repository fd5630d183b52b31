// Package productboard implements the Productboard REST API client used
// by the MCP tools.
//
// The package centers on a single generic fetch/filter/accumulate loop
// (collector.go) shared by every list operation, wrapped around an
// authenticated HTTP client with a bounded exponential-backoff retry
// policy and a pagination-cursor normalizer. Typed methods in
// client_impl.go parameterize that loop per entity kind with server-side
// query parameters and client-side filter strategies.
//
// Entities are treated as untyped records (map[string]any); shaping them
// for agent consumption is the job of the tools/output package.
package productboard
