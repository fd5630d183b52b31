package company

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

// DefaultFields is the minimal projection for company listings.
var DefaultFields = []string{"id", "name", "domain"}

// RegisterCompanyTools registers the company tools with the MCP server.
func RegisterCompanyTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCompaniesTool := mcp.NewTool("productboard_list_companies",
		mcp.WithDescription(`List Productboard companies.

A term filter matches against company name and domain after fetching, so
a filtered listing can return fewer items than the limit.`),
		mcp.WithString("term",
			mcp.Description("Substring to match against company name or domain, case-insensitive (optional)"),
		),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return per company (default ["id","name","domain"]; "*" for all)`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of companies to return (1-100, default 20)"),
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
	s.AddTool(listCompaniesTool, tools.WrapWithObservability("productboard_list_companies", handleListCompanies, sc))

	return nil
}
