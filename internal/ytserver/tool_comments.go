package ytserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine/sources"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/toolutil"
)

type GetCommentsInput struct {
	Video     string `json:"video" jsonschema:"Video ID or YouTube URL"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Max comments to return (default: 30)"`
	Sort      string `json:"sort,omitempty" jsonschema:"Sort order: top (default) or new"`
	Sentiment string `json:"sentiment,omitempty" jsonschema:"Keep only one sentiment: positive, negative, neutral"`
	Summarize bool   `json:"summarize,omitempty" jsonschema:"Return an aggregate summary (sentiment ratio, top comments, keywords) instead of the raw list"`
}

type GetCommentsOutput struct {
	VideoID  string                 `json:"video_id"`
	Count    int                    `json:"count"`
	Comments []engine.Comment       `json:"comments,omitempty"`
	Summary  *engine.CommentSummary `json:"summary,omitempty"`
}

func registerGetComments(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_comments",
		Description: "Fetch video comments with spam filtering and rule-based sentiment labels. Optionally filter by sentiment or summarize into a sentiment ratio, top comments by likes, and frequent keywords.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GetCommentsInput) (*mcp.CallToolResult, GetCommentsOutput, error) {
		videoID, err := toolutil.VideoID(input.Video)
		if err != nil {
			return nil, GetCommentsOutput{}, err
		}
		limit := input.Limit
		if limit <= 0 {
			limit = engine.Cfg.MaxComments
		}
		sort := input.Sort
		if sort == "" {
			sort = "top"
		}

		cacheKey := engine.CacheKey("get_comments", videoID, fmt.Sprintf("%d", limit), sort, input.Sentiment, fmt.Sprintf("%t", input.Summarize))
		if out, ok := engine.CacheLoadJSON[GetCommentsOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		comments, err := sources.FetchComments(ctx, videoID, limit, sort, input.Sentiment, true)
		if err != nil {
			return nil, GetCommentsOutput{}, err
		}

		if err := st.SaveComments(ctx, videoID, comments); err != nil {
			slog.Warn("get_comments: store failed", slog.String("video_id", videoID), slog.Any("error", err))
		}

		out := GetCommentsOutput{VideoID: videoID, Count: len(comments)}
		if input.Summarize {
			summary := engine.SummarizeComments(comments, 5)
			out.Summary = &summary
		} else {
			out.Comments = comments
		}

		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
