package ytserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/toolutil"
)

type SegmentTopicsInput struct {
	Video    string `json:"video" jsonschema:"Video ID or YouTube URL"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language code"`
	Full     bool   `json:"full,omitempty" jsonschema:"Return full segment text instead of 200-char previews"`
}

// SegmentPreview is a topic segment with its text cut to a preview, keeping
// tool output small for long videos.
type SegmentPreview struct {
	Segment   int    `json:"segment"`
	Topic     string `json:"topic"`
	CharCount int    `json:"char_count"`
	Text      string `json:"text"`
}

type SegmentTopicsOutput struct {
	VideoID  string           `json:"video_id"`
	Lang     string           `json:"lang,omitempty"`
	Count    int              `json:"count"`
	Segments []SegmentPreview `json:"segments"`
}

func registerSegmentTopics(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "segment_topics",
		Description: "Split a video transcript into topic segments using discourse markers (\"next topic\", \"moving on\") with a word-count fallback for unstructured speech. Each segment carries topic keywords and a text preview.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SegmentTopicsInput) (*mcp.CallToolResult, SegmentTopicsOutput, error) {
		videoID, err := toolutil.VideoID(input.Video)
		if err != nil {
			return nil, SegmentTopicsOutput{}, err
		}

		cacheKey := engine.CacheKey("segment_topics", videoID, input.Language, boolKey(input.Full))
		if out, ok := engine.CacheLoadJSON[SegmentTopicsOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		text, lang, err := toolutil.Transcript(ctx, st, videoID, input.Language)
		if err != nil {
			return nil, SegmentTopicsOutput{}, err
		}

		segments := engine.SegmentTopics(text)
		engine.IncrSegmentations()

		previews := make([]SegmentPreview, len(segments))
		for i, s := range segments {
			preview := s.Text
			if !input.Full {
				preview = engine.Truncate(preview, 200)
			}
			previews[i] = SegmentPreview{
				Segment:   s.Segment,
				Topic:     s.Topic,
				CharCount: s.CharCount,
				Text:      preview,
			}
		}

		out := SegmentTopicsOutput{
			VideoID:  videoID,
			Lang:     lang,
			Count:    len(previews),
			Segments: previews,
		}
		engine.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
