package ytserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
)

type SearchTranscriptsInput struct {
	Query string `json:"query" jsonschema:"Text to find in stored transcripts"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max videos to return (default: 10)"`
}

type SearchTranscriptsOutput struct {
	Query string                `json:"query"`
	Count int                   `json:"count"`
	Hits  []store.TranscriptHit `json:"hits"`
}

func registerSearchTranscripts(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_transcripts",
		Description: "Full-text search over locally stored transcripts. Returns matching videos with a text snippet around the first occurrence. Only videos previously collected with get_video or get_transcript are searchable.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchTranscriptsInput) (*mcp.CallToolResult, SearchTranscriptsOutput, error) {
		if input.Query == "" {
			return nil, SearchTranscriptsOutput{}, errors.New("query is required")
		}
		hits, err := st.SearchTranscripts(ctx, input.Query, input.Limit)
		if err != nil {
			return nil, SearchTranscriptsOutput{}, err
		}
		return nil, SearchTranscriptsOutput{
			Query: input.Query,
			Count: len(hits),
			Hits:  hits,
		}, nil
	})
}
