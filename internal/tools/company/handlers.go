package company

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

func handleListCompanies(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := productboard.CompanyQuery{
		ListOptions: tools.ListOptionsFromArgs(args),
		Term:        tools.StringArg(args, "term"),
	}

	result, err := sc.Productboard().ListCompanies(ctx, query)
	if err != nil {
		return tools.ErrorResult("list companies", err), nil
	}

	return tools.NewListToolResult(result, tools.FieldsArg(args, DefaultFields))
}
