package ytserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine/sources"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/toolutil"
)

type SearchYouTubeInput struct {
	Query          string `json:"query" jsonschema:"Search query"`
	Language       string `json:"language,omitempty" jsonschema:"Relevance language code (default: all)"`
	Channel        string `json:"channel,omitempty" jsonschema:"Restrict to a channel ID (Data API key required)"`
	Order          string `json:"order,omitempty" jsonschema:"Sort: relevance (default), date, viewCount, rating (Data API key required)"`
	PublishedAfter string `json:"published_after,omitempty" jsonschema:"Only videos published after this RFC3339 timestamp (Data API key required)"`
	Limit          int    `json:"limit,omitempty" jsonschema:"Max results, 1-20 (default: 5)"`
}

type SearchYouTubeOutput struct {
	Query  string               `json:"query"`
	Count  int                  `json:"count"`
	Videos []engine.VideoResult `json:"videos"`
}

func registerSearchYouTube(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_youtube",
		Description: "Search YouTube for videos by keyword. Uses the Data API when a key is configured (supports channel, order, and date filters), falling back to results-page scraping otherwise.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchYouTubeInput) (*mcp.CallToolResult, SearchYouTubeOutput, error) {
		if input.Query == "" {
			return nil, SearchYouTubeOutput{}, errors.New("query is required")
		}

		cacheKey := engine.CacheKey("search_youtube", input.Query, input.Language, input.Channel, input.Order, input.PublishedAfter, fmt.Sprintf("%d", input.Limit))
		if out, ok := engine.CacheLoadJSON[SearchYouTubeOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		videos, err := sources.SearchVideos(ctx, input.Query, sources.SearchOptions{
			Language:       toolutil.NormLang(input.Language),
			ChannelID:      input.Channel,
			Order:          input.Order,
			PublishedAfter: input.PublishedAfter,
			Limit:          input.Limit,
		})
		if err != nil {
			return nil, SearchYouTubeOutput{}, err
		}

		out := SearchYouTubeOutput{
			Query:  input.Query,
			Count:  len(videos),
			Videos: videos,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
