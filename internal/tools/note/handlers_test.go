package note

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackline/mcp-productboard/internal/productboard"
	"github.com/stackline/mcp-productboard/internal/server"
	"github.com/stackline/mcp-productboard/internal/tools/testdata"
)

func newTestContext(t *testing.T, mock *testdata.MockClient) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(),
		server.WithProductboardClient(mock),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err, "failed to create server context")
	return sc
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent in result, got %T", result.Content[0])
	return textContent.Text
}

func TestHandleListNotes(t *testing.T) {
	longContent := strings.Repeat("x", 600)
	mock := &testdata.MockClient{
		NotesResult: &productboard.ListResult{
			Items: []productboard.Record{
				{"id": "n1", "title": "Checkout feedback", "content": longContent},
			},
			PagesFetched: 1,
		},
	}
	sc := newTestContext(t, mock)

	result, err := handleListNotes(context.Background(), callRequest(map[string]any{
		"term":        "checkout",
		"companyId":   "c1",
		"createdFrom": "2026-01-01",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError, "unexpected error: %s", resultText(t, result))
	assert.Equal(t, "checkout", mock.LastNoteQuery.Term)
	assert.Equal(t, "c1", mock.LastNoteQuery.CompanyID)
	assert.Equal(t, "2026-01-01", mock.LastNoteQuery.CreatedFrom)

	// Content longer than the cap comes back truncated with a marker.
	text := resultText(t, result)
	assert.NotContains(t, text, longContent, "long note content should be truncated")
	assert.Contains(t, text, "...")
}

func TestHandleCreateNote(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{
			name: "full note",
			args: map[string]any{
				"title":      "Checkout feedback",
				"content":    "Customer cannot apply coupons.",
				"displayUrl": "https://example.slack.com/archives/C1/p1",
				"userEmail":  "cs@example.com",
				"companyId":  "c1",
				"tags":       []any{"checkout", "bug"},
			},
		},
		{
			name:    "missing title",
			args:    map[string]any{"content": "body"},
			wantErr: true,
		},
		{
			name:    "missing content",
			args:    map[string]any{"title": "t"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := &testdata.MockClient{
				CreatedNote: productboard.Record{"id": "n1", "title": "Checkout feedback"},
			}
			sc := newTestContext(t, mock)

			result, err := handleCreateNote(context.Background(), callRequest(tc.args), sc)
			require.NoError(t, err)
			require.Equal(t, tc.wantErr, result.IsError, "result: %s", resultText(t, result))
			if tc.wantErr {
				return
			}
			assert.Equal(t, "Checkout feedback", mock.LastNoteInput.Title)
			assert.Len(t, mock.LastNoteInput.Tags, 2)
		})
	}
}
