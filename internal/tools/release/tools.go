package release

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

// DefaultFields is the minimal projection for release listings.
var DefaultFields = []string{"id", "name", "state", "releaseGroup"}

// AssignmentDefaultFields is the projection for feature-release
// assignment listings.
var AssignmentDefaultFields = []string{"feature", "release", "isAssigned"}

// RegisterReleaseTools registers the release tools with the MCP server.
func RegisterReleaseTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listReleasesTool := mcp.NewTool("productboard_list_releases",
		mcp.WithDescription(`List Productboard releases, optionally filtered by release group or state.

State matching (in_progress, upcoming, completed) happens after fetching,
so a state filter can return fewer items than the limit.`),
		mcp.WithString("releaseGroupId",
			mcp.Description("Release group to scope releases to (optional)"),
		),
		mcp.WithString("state",
			mcp.Description("Release state to match: in_progress, upcoming, or completed (optional)"),
		),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return per release (default ["id","name","state","releaseGroup"]; "*" for all)`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of releases to return (1-100, default 20)"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous response (optional)"),
		),
		mcp.WithBoolean("autoPaginate",
			mcp.Description("Fetch successive pages until the limit or page cap is reached (default false)"),
		),
		mcp.WithNumber("maxPages",
			mcp.Description("Page cap when auto-paginating (default 5, max 20)"),
		),
	)
	s.AddTool(listReleasesTool, tools.WrapWithObservability("productboard_list_releases", handleListReleases, sc))

	listAssignmentsTool := mcp.NewTool("productboard_list_release_assignments",
		mcp.WithDescription(`List feature-release assignments.

Scope by featureId to see which releases a feature sits in, or by
releaseId to see a release's contents.`),
		mcp.WithString("featureId",
			mcp.Description("Feature to list assignments for (optional)"),
		),
		mcp.WithString("releaseId",
			mcp.Description("Release to list assignments for (optional)"),
		),
		mcp.WithString("releaseState",
			mcp.Description("Filter assignments by the release's state (optional)"),
		),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return per assignment (default ["feature","release","isAssigned"]; "*" for all)`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of assignments to return (1-100, default 20)"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous response (optional)"),
		),
		mcp.WithBoolean("autoPaginate",
			mcp.Description("Fetch successive pages until the limit or page cap is reached (default false)"),
		),
		mcp.WithNumber("maxPages",
			mcp.Description("Page cap when auto-paginating (default 5, max 20)"),
		),
	)
	s.AddTool(listAssignmentsTool, tools.WrapWithObservability("productboard_list_release_assignments", handleListAssignments, sc))

	moveFeatureTool := mcp.NewTool("productboard_move_feature_release",
		mcp.WithDescription(`Move a feature between releases.

Assigns the feature to toReleaseId, then unassigns it from fromReleaseId.
Either side may be omitted to only add or only remove, but not both.`),
		mcp.WithString("featureId",
			mcp.Required(),
			mcp.Description("Feature to move"),
		),
		mcp.WithString("fromReleaseId",
			mcp.Description("Release to remove the feature from (optional)"),
		),
		mcp.WithString("toReleaseId",
			mcp.Description("Release to add the feature to (optional)"),
		),
	)
	s.AddTool(moveFeatureTool, tools.WrapWithObservability("productboard_move_feature_release", handleMoveFeature, sc))

	return nil
}
