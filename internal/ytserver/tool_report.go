package ytserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine/sources"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/toolutil"
)

type GetReportInput struct {
	Video    string `json:"video" jsonschema:"Video ID or YouTube URL"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language code"`
	Comments bool   `json:"comments,omitempty" jsonschema:"Include a viewer reaction section (slower, runs yt-dlp for comments)"`
}

type GetReportOutput struct {
	VideoID string `json:"video_id"`
	Report  string `json:"report"`
}

func registerGetReport(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_report",
		Description: "Produce a full markdown analysis report for a video: summary, topic segments with estimated timestamps, extracted entities grouped by category, and optionally a viewer reaction section from comments.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GetReportInput) (*mcp.CallToolResult, GetReportOutput, error) {
		videoID, err := toolutil.VideoID(input.Video)
		if err != nil {
			return nil, GetReportOutput{}, err
		}

		cacheKey := engine.CacheKey("get_report", videoID, input.Language, boolKey(input.Comments))
		if out, ok := engine.CacheLoadJSON[GetReportOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		text, lang, err := toolutil.Transcript(ctx, st, videoID, input.Language)
		if err != nil {
			return nil, GetReportOutput{}, err
		}

		meta, err := sources.FetchVideoMetadata(ctx, videoID)
		if err != nil {
			slog.Warn("get_report: metadata failed", slog.String("video_id", videoID), slog.Any("error", err))
			meta.VideoID = videoID
		}

		in := engine.ReportInput{
			VideoID:         videoID,
			Title:           meta.Title,
			Channel:         meta.ChannelName,
			DurationSeconds: meta.DurationSeconds,
			Lang:            lang,
			Summary:         engine.SummarizeBest(ctx, text),
			Segments:        engine.SegmentTopics(text),
			Entities:        engine.ExtractEntities(text, nil),
		}
		engine.IncrSummaries()
		engine.IncrSegmentations()
		engine.IncrEntityExtractions()

		if input.Comments {
			comments, err := sources.FetchComments(ctx, videoID, engine.Cfg.MaxComments, "top", "", true)
			if err != nil {
				slog.Warn("get_report: comments failed", slog.String("video_id", videoID), slog.Any("error", err))
			} else {
				summary := engine.SummarizeComments(comments, 5)
				in.Comments = &summary
			}
		}

		report := engine.BuildReport(in)
		engine.IncrReportsGenerated()

		out := GetReportOutput{VideoID: videoID, Report: report}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
