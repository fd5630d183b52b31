package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/tools/output"
)

// ListMeta is the response metadata attached to every list tool result.
type ListMeta struct {
	Count        int    `json:"count"`
	PagesFetched int    `json:"pagesFetched"`
	HadError     bool   `json:"hadError"`
	NextCursor   string `json:"nextCursor,omitempty"`
}

// NewListToolResult projects the collected records and wraps them with
// pagination metadata in the standard list response shape.
func NewListToolResult(result *productboard.ListResult, fields []string) (*mcp.CallToolResult, error) {
	items := output.ProjectAll(result.Items, fields)
	response := map[string]any{
		"items": items,
		"_meta": ListMeta{
			Count:        len(items),
			PagesFetched: result.PagesFetched,
			HadError:     result.HadError,
			NextCursor:   result.NextCursor,
		},
	}
	return NewJSONToolResult(response)
}

// NewRecordToolResult projects a single record into a tool result.
func NewRecordToolResult(record productboard.Record, fields []string) (*mcp.CallToolResult, error) {
	return NewJSONToolResult(map[string]any{
		"item": output.Project(record, fields),
	})
}

// NewJSONToolResult marshals a response payload into a text tool result.
func NewJSONToolResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ErrorResult maps a client error to a caller-visible tool error carrying
// the failure kind and a short next-step hint instead of a raw trace.
func ErrorResult(action string, err error) *mcp.CallToolResult {
	var (
		upstream   *productboard.UpstreamError
		malformed  *productboard.MalformedResponseError
		scopeMiss  *productboard.ScopeNotFoundError
		validation *productboard.ValidationError
	)

	switch {
	case errors.Is(err, productboard.ErrMissingToken):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to %s: %v. Configure the token and restart the server.", action, err))
	case errors.As(err, &validation):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Invalid request: %s. Adjust the arguments and retry.", validation.Message))
	case errors.As(err, &scopeMiss):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to %s: %v. Pass an explicit productId or create the product in Productboard.", action, err))
	case errors.As(err, &upstream):
		return upstreamErrorResult(action, err, upstream)
	case errors.As(err, &malformed):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to %s: the API returned an unexpected response shape. Retry the call.", action))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", action, err))
	}
}

// upstreamErrorResult picks a next-step hint by HTTP status class.
func upstreamErrorResult(action string, err error, upstream *productboard.UpstreamError) *mcp.CallToolResult {
	switch {
	case productboard.IsUpstreamStatus(err, http.StatusUnauthorized),
		productboard.IsUpstreamStatus(err, http.StatusForbidden):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to %s: upstream error (status %d). Check that PRODUCTBOARD_API_TOKEN is valid and has access.",
			action, upstream.StatusCode))
	case productboard.IsUpstreamStatus(err, http.StatusNotFound):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to %s: upstream error (status 404). Verify the id exists in the workspace. %s",
			action, upstream.Body))
	case productboard.IsUpstreamStatus(err, http.StatusTooManyRequests):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to %s: upstream rate limit (status 429). Wait before retrying or lower maxPages.", action))
	default:
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to %s: upstream error (status %d). Retry later or narrow the query. %s",
			action, upstream.StatusCode, upstream.Body))
	}
}
