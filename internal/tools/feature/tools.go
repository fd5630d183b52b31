package feature

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

// DefaultFields is the minimal projection returned when the caller does
// not pick fields explicitly.
var DefaultFields = []string{"id", "name", "status", "owner"}

// RegisterFeatureTools registers the feature tools with the MCP server.
func RegisterFeatureTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listFeaturesTool := mcp.NewTool("productboard_list_features",
		mcp.WithDescription(`List Productboard features, scoped to a product.

When productId is omitted, the workspace's default product is resolved by
name and used instead. Results are projected to a small field set by
default; pass fields=["*"] for full records. A single page is fetched
unless autoPaginate is set; the response carries a nextCursor to resume.`),
		mcp.WithString("productId",
			mcp.Description("Product to scope features to (optional, default product used if omitted)"),
		),
		mcp.WithBoolean("allProducts",
			mcp.Description("Disable product scoping and list features across the workspace"),
		),
		mcp.WithArray("statusIds",
			mcp.Description("Feature status ids to match (optional)"),
		),
		mcp.WithArray("statusNames",
			mcp.Description("Feature status names to match, case-insensitive (optional)"),
		),
		mcp.WithString("ownerEmail",
			mcp.Description("Filter by the feature owner's email (optional)"),
		),
		mcp.WithBoolean("archived",
			mcp.Description("Filter by archived state (optional, omitted means both)"),
		),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return per feature (default ["id","name","status","owner"]; "*" for all)`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of features to return (1-100, default 20)"),
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
	s.AddTool(listFeaturesTool, tools.WrapWithObservability("productboard_list_features", handleListFeatures, sc))

	getFeatureTool := mcp.NewTool("productboard_get_feature",
		mcp.WithDescription("Get a single Productboard feature by id, including its description."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Feature id"),
		),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return (default includes description; "*" for all)`),
		),
	)
	s.AddTool(getFeatureTool, tools.WrapWithObservability("productboard_get_feature", handleGetFeature, sc))

	return nil
}
