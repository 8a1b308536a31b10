package ytserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine/sources"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/toolutil"
)

type GetVideoInput struct {
	Video    string `json:"video" jsonschema:"Video ID or YouTube URL"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language code (default: ko, en)"`
	Refresh  bool   `json:"refresh,omitempty" jsonschema:"Re-collect even if the video is already stored"`
}

type GetVideoOutput struct {
	VideoID          string `json:"video_id"`
	Title            string `json:"title"`
	ChannelID        string `json:"channel_id,omitempty"`
	ChannelName      string `json:"channel_name,omitempty"`
	PublishedAt      string `json:"published_at,omitempty"`
	DurationSeconds  int    `json:"duration_seconds,omitempty"`
	ViewCount        int64  `json:"view_count,omitempty"`
	Summary          string `json:"summary"`
	TranscriptLang   string `json:"transcript_lang,omitempty"`
	TranscriptLength int    `json:"transcript_length"`
	Status           string `json:"status"`
}

func registerGetVideo(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_video",
		Description: "Collect a YouTube video: metadata, transcript, and an auto-generated summary. Results are stored locally, so a second call on the same video is instant. Accepts a video ID or any YouTube URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GetVideoInput) (*mcp.CallToolResult, GetVideoOutput, error) {
		videoID, err := toolutil.VideoID(input.Video)
		if err != nil {
			return nil, GetVideoOutput{}, err
		}

		if !input.Refresh {
			if v, err := st.GetVideo(ctx, videoID); err == nil && v != nil && v.Status == "done" {
				return nil, videoOutput(v), nil
			}
		}

		meta, metaErr := sources.FetchVideoMetadata(ctx, videoID)
		if metaErr != nil {
			slog.Warn("get_video: metadata failed", slog.String("video_id", videoID), slog.Any("error", metaErr))
		}

		text, lang, err := toolutil.Transcript(ctx, st, videoID, input.Language)
		if err != nil {
			if metaErr != nil {
				return nil, GetVideoOutput{}, errors.Join(metaErr, err)
			}
			return nil, GetVideoOutput{}, err
		}

		summary := engine.SummarizeBest(ctx, text)
		engine.IncrSummaries()

		v := store.Video{
			VideoID:          videoID,
			ChannelID:        meta.ChannelID,
			ChannelName:      meta.ChannelName,
			Title:            meta.Title,
			Description:      meta.Description,
			PublishedAt:      meta.UploadDate,
			DurationSeconds:  meta.DurationSeconds,
			ViewCount:        meta.ViewCount,
			TranscriptText:   text,
			TranscriptLang:   lang,
			TranscriptLength: engine.RuneLen(text),
			Summary:          summary,
			Status:           "done",
			CollectedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if err := st.UpsertVideo(ctx, v); err != nil {
			slog.Warn("get_video: store failed", slog.String("video_id", videoID), slog.Any("error", err))
		}
		return nil, videoOutput(&v), nil
	})
}

func videoOutput(v *store.Video) GetVideoOutput {
	return GetVideoOutput{
		VideoID:          v.VideoID,
		Title:            v.Title,
		ChannelID:        v.ChannelID,
		ChannelName:      v.ChannelName,
		PublishedAt:      v.PublishedAt,
		DurationSeconds:  v.DurationSeconds,
		ViewCount:        v.ViewCount,
		Summary:          v.Summary,
		TranscriptLang:   v.TranscriptLang,
		TranscriptLength: v.TranscriptLength,
		Status:           v.Status,
	}
}
