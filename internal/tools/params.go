// Package tools provides shared utilities for MCP tool implementations.
package tools

import (
	"github.com/stackline/mcp-productboard/internal/productboard"
)

// StringArg extracts a string argument, returning "" when absent or not a
// string.
func StringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// IntArg extracts an integer argument. JSON numbers arrive as float64.
func IntArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// BoolArg extracts a boolean argument, returning false when absent.
func BoolArg(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// StringSliceArg extracts a string-array argument. Non-string elements
// are skipped.
func StringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}

// ListOptionsFromArgs extracts the pagination controls shared by all list
// tools, clamping the limit to the 1-100 range.
func ListOptionsFromArgs(args map[string]any) productboard.ListOptions {
	limit := IntArg(args, "limit", productboard.DefaultLimit)
	if limit < 1 {
		limit = productboard.DefaultLimit
	}
	if limit > productboard.MaxLimit {
		limit = productboard.MaxLimit
	}
	return productboard.ListOptions{
		Limit:        limit,
		Cursor:       StringArg(args, "cursor"),
		AutoPaginate: BoolArg(args, "autoPaginate"),
		MaxPages:     IntArg(args, "maxPages", productboard.DefaultMaxPages),
	}
}

// FieldsArg extracts the field-projection list, falling back to the
// given per-entity default set.
func FieldsArg(args map[string]any, defaults []string) []string {
	if fields := StringSliceArg(args, "fields"); len(fields) > 0 {
		return fields
	}
	return defaults
}
