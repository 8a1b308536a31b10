package ytserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/toolutil"
)

type ExtractEntitiesInput struct {
	Video    string `json:"video,omitempty" jsonschema:"Video ID or YouTube URL (transcript is fetched if not stored)"`
	Text     string `json:"text,omitempty" jsonschema:"Raw text to extract from instead of a video transcript"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language code"`
}

type ExtractEntitiesOutput struct {
	VideoID  string          `json:"video_id,omitempty"`
	Lang     string          `json:"lang,omitempty"`
	Count    int             `json:"count"`
	Entities []engine.Entity `json:"entities"`
}

func registerExtractEntities(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_entities",
		Description: "Extract named entities (companies, people, technologies, crypto assets, indices, sectors, macro terms) from a video transcript or raw text using dictionary matching. Returns entities with canonical names, matched keywords, and mention counts, sorted by frequency.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ExtractEntitiesInput) (*mcp.CallToolResult, ExtractEntitiesOutput, error) {
		out := ExtractEntitiesOutput{}
		text := input.Text

		if text == "" {
			videoID, err := toolutil.VideoID(input.Video)
			if err != nil {
				return nil, ExtractEntitiesOutput{}, err
			}
			cacheKey := engine.CacheKey("extract_entities", videoID, input.Language)
			if cached, ok := engine.CacheLoadJSON[ExtractEntitiesOutput](ctx, cacheKey); ok {
				return nil, cached, nil
			}
			text, out.Lang, err = toolutil.Transcript(ctx, st, videoID, input.Language)
			if err != nil {
				return nil, ExtractEntitiesOutput{}, err
			}
			out.VideoID = videoID

			out.Entities = engine.ExtractEntities(text, nil)
			out.Count = len(out.Entities)
			engine.IncrEntityExtractions()
			engine.CacheStoreJSON(ctx, cacheKey, out)
			return nil, out, nil
		}

		out.Entities = engine.ExtractEntities(text, nil)
		out.Count = len(out.Entities)
		engine.IncrEntityExtractions()
		return nil, out, nil
	})
}
