package feature

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

// getFeatureDefaultFields includes the description because single-record
// lookups are where the agent reads the body of a feature.
var getFeatureDefaultFields = []string{"id", "name", "description", "status", "owner", "timeframe"}

func handleListFeatures(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := productboard.FeatureQuery{
		ListOptions:    tools.ListOptionsFromArgs(args),
		ProductID:      tools.StringArg(args, "productId"),
		NoProductScope: tools.BoolArg(args, "allProducts"),
		StatusIDs:      tools.StringSliceArg(args, "statusIds"),
		StatusNames:    tools.StringSliceArg(args, "statusNames"),
		OwnerEmail:     tools.StringArg(args, "ownerEmail"),
	}
	// Archived is tri-state: an absent argument means both archived and
	// active features are returned.
	if v, ok := args["archived"].(bool); ok {
		query.Archived = &v
	}

	result, err := sc.Productboard().ListFeatures(ctx, query)
	if err != nil {
		return tools.ErrorResult("list features", err), nil
	}

	return tools.NewListToolResult(result, tools.FieldsArg(args, DefaultFields))
}

func handleGetFeature(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id := tools.StringArg(args, "id")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	record, err := sc.Productboard().GetFeature(ctx, id)
	if err != nil {
		return tools.ErrorResult("get feature", err), nil
	}

	return tools.NewRecordToolResult(record, tools.FieldsArg(args, getFeatureDefaultFields))
}
