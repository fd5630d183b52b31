package release

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
	"github.com/stackline/mcp-productboard/internal/tools/output"
)

func handleListReleases(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := productboard.ReleaseQuery{
		ListOptions:    tools.ListOptionsFromArgs(args),
		ReleaseGroupID: tools.StringArg(args, "releaseGroupId"),
		State:          tools.StringArg(args, "state"),
	}

	result, err := sc.Productboard().ListReleases(ctx, query)
	if err != nil {
		return tools.ErrorResult("list releases", err), nil
	}

	return tools.NewListToolResult(result, tools.FieldsArg(args, DefaultFields))
}

func handleListAssignments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := productboard.AssignmentQuery{
		ListOptions:  tools.ListOptionsFromArgs(args),
		FeatureID:    tools.StringArg(args, "featureId"),
		ReleaseID:    tools.StringArg(args, "releaseId"),
		ReleaseState: tools.StringArg(args, "releaseState"),
	}

	result, err := sc.Productboard().ListReleaseAssignments(ctx, query)
	if err != nil {
		return tools.ErrorResult("list release assignments", err), nil
	}

	return tools.NewListToolResult(result, tools.FieldsArg(args, AssignmentDefaultFields))
}

func handleMoveFeature(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	featureID := tools.StringArg(args, "featureId")
	if featureID == "" {
		return mcp.NewToolResultError("featureId is required"), nil
	}

	record, err := sc.Productboard().MoveFeatureBetweenReleases(ctx,
		featureID,
		tools.StringArg(args, "fromReleaseId"),
		tools.StringArg(args, "toReleaseId"),
	)
	if err != nil {
		return tools.ErrorResult("move feature between releases", err), nil
	}

	return tools.NewRecordToolResult(record, []string{output.Wildcard})
}
