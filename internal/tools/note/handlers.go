package note

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
	"github.com/stackline/mcp-productboard/internal/tools/output"
)

func handleListNotes(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query := productboard.NoteQuery{
		ListOptions: tools.ListOptionsFromArgs(args),
		Term:        tools.StringArg(args, "term"),
		CompanyID:   tools.StringArg(args, "companyId"),
		OwnerEmail:  tools.StringArg(args, "ownerEmail"),
		CreatedFrom: tools.StringArg(args, "createdFrom"),
		CreatedTo:   tools.StringArg(args, "createdTo"),
	}

	result, err := sc.Productboard().ListNotes(ctx, query)
	if err != nil {
		return tools.ErrorResult("list notes", err), nil
	}

	return tools.NewListToolResult(result, tools.FieldsArg(args, DefaultFields))
}

func handleCreateNote(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	input := productboard.NoteInput{
		Title:      tools.StringArg(args, "title"),
		Content:    tools.StringArg(args, "content"),
		DisplayURL: tools.StringArg(args, "displayUrl"),
		UserEmail:  tools.StringArg(args, "userEmail"),
		CompanyID:  tools.StringArg(args, "companyId"),
		Tags:       tools.StringSliceArg(args, "tags"),
	}
	if input.Title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	if input.Content == "" {
		return mcp.NewToolResultError("content is required"), nil
	}

	record, err := sc.Productboard().CreateNote(ctx, input)
	if err != nil {
		return tools.ErrorResult("create note", err), nil
	}

	return tools.NewRecordToolResult(record, []string{output.Wildcard})
}
