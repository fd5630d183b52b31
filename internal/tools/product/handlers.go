package product

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
	"github.com/stackline/mcp-productboard/internal/tools/output"
)

func handleListProducts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	records, err := sc.Productboard().ListProducts(ctx)
	if err != nil {
		return tools.ErrorResult("list products", err), nil
	}

	return tools.NewJSONToolResult(map[string]any{
		"items": output.ProjectAll(records, tools.FieldsArg(args, DefaultFields)),
	})
}

func handleListStatuses(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	records, err := sc.Productboard().ListFeatureStatuses(ctx)
	if err != nil {
		return tools.ErrorResult("list feature statuses", err), nil
	}

	return tools.NewJSONToolResult(map[string]any{
		"items": output.ProjectAll(records, tools.FieldsArg(args, StatusDefaultFields)),
	})
}

func handleCurrentProduct(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	client := sc.Productboard()
	if tools.BoolArg(args, "invalidate") {
		client.InvalidateDefaultProduct()
	}

	id, err := client.DefaultProductID(ctx)
	if err != nil {
		return tools.ErrorResult("resolve default product", err), nil
	}

	return tools.NewJSONToolResult(map[string]any{
		"id":   id,
		"name": sc.Config().DefaultProductName,
	})
}
