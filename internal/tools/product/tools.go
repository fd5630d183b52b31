package product

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

// DefaultFields is the minimal projection for product listings.
var DefaultFields = []string{"id", "name"}

// StatusDefaultFields is the projection for feature status listings.
var StatusDefaultFields = []string{"id", "name"}

// RegisterProductTools registers the product and workspace tools with the
// MCP server.
func RegisterProductTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listProductsTool := mcp.NewTool("productboard_list_products",
		mcp.WithDescription("List the products in the Productboard workspace."),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return per product (default ["id","name"]; "*" for all)`),
		),
	)
	s.AddTool(listProductsTool, tools.WrapWithObservability("productboard_list_products", handleListProducts, sc))

	listStatusesTool := mcp.NewTool("productboard_list_feature_statuses",
		mcp.WithDescription("List the feature statuses configured in the workspace. Useful for resolving status names to ids before filtering features."),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return per status (default ["id","name"]; "*" for all)`),
		),
	)
	s.AddTool(listStatusesTool, tools.WrapWithObservability("productboard_list_feature_statuses", handleListStatuses, sc))

	currentProductTool := mcp.NewTool("productboard_current_product",
		mcp.WithDescription(`Show the default product used when feature queries omit an explicit product.

The resolved id is cached; pass invalidate=true to drop the cache and
re-resolve, e.g. after the product was renamed.`),
		mcp.WithBoolean("invalidate",
			mcp.Description("Drop the cached resolution before resolving (default false)"),
		),
	)
	s.AddTool(currentProductTool, tools.WrapWithObservability("productboard_current_product", handleCurrentProduct, sc))

	return nil
}
