package note

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools"
)

// DefaultFields is the minimal projection for note listings. Content is
// included because notes are mostly read for their body; the projector
// truncates it.
var DefaultFields = []string{"id", "title", "content", "company", "createdAt"}

// RegisterNoteTools registers the note tools with the MCP server.
func RegisterNoteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listNotesTool := mcp.NewTool("productboard_list_notes",
		mcp.WithDescription(`Search Productboard notes (customer feedback).

All filters combine server-side. Note content is truncated in the
response; fetch with fields=["*"] only when the full body is needed.`),
		mcp.WithString("term",
			mcp.Description("Full-text search term (optional)"),
		),
		mcp.WithString("companyId",
			mcp.Description("Company the notes belong to (optional)"),
		),
		mcp.WithString("ownerEmail",
			mcp.Description("Filter by the note owner's email (optional)"),
		),
		mcp.WithString("createdFrom",
			mcp.Description("Only notes created on or after this date, YYYY-MM-DD (optional)"),
		),
		mcp.WithString("createdTo",
			mcp.Description("Only notes created on or before this date, YYYY-MM-DD (optional)"),
		),
		mcp.WithArray("fields",
			mcp.Description(`Fields to return per note (default ["id","title","content","company","createdAt"]; "*" for all)`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of notes to return (1-100, default 20)"),
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
	s.AddTool(listNotesTool, tools.WrapWithObservability("productboard_list_notes", handleListNotes, sc))

	createNoteTool := mcp.NewTool("productboard_create_note",
		mcp.WithDescription(`Create a Productboard note.

The note lands in the inbox for triage. Attach it to a company or a
creating user by id/email when known.`),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Note body (plain text or simple HTML)"),
		),
		mcp.WithString("displayUrl",
			mcp.Description("Source URL shown on the note, e.g. a Slack permalink (optional)"),
		),
		mcp.WithString("userEmail",
			mcp.Description("Email of the user the note is attributed to (optional)"),
		),
		mcp.WithString("companyId",
			mcp.Description("Company to attach the note to (optional)"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags to apply to the note (optional)"),
		),
	)
	s.AddTool(createNoteTool, tools.WrapWithObservability("productboard_create_note", handleCreateNote, sc))

	return nil
}
