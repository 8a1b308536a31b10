package ytserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/toolutil"
)

// chunkChars is the target chunk size for mode=chunks. Chunks break on rune
// boundaries, never inside a character.
const chunkChars = 2000

type GetTranscriptInput struct {
	Video    string `json:"video" jsonschema:"Video ID or YouTube URL"`
	Mode     string `json:"mode,omitempty" jsonschema:"Output mode: summary (default), full (writes the transcript to a file and returns its path), chunks (~2000-char pieces)"`
	Language string `json:"language,omitempty" jsonschema:"Preferred transcript language code"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"Summary length cap in characters (default: 1500)"`
}

type TranscriptChunk struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

type GetTranscriptOutput struct {
	VideoID   string            `json:"video_id"`
	Lang      string            `json:"lang,omitempty"`
	Mode      string            `json:"mode"`
	CharCount int               `json:"char_count"`
	Summary   string            `json:"summary,omitempty"`
	FilePath  string            `json:"file_path,omitempty"`
	Chunks    []TranscriptChunk `json:"chunks,omitempty"`
}

func registerGetTranscript(server *mcp.Server, st store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Fetch a video transcript. Mode summary returns an extractive summary, mode full writes the whole transcript to a file and returns the path (transcripts can exceed context limits), mode chunks returns ~2000-character pieces for paging.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GetTranscriptInput) (*mcp.CallToolResult, GetTranscriptOutput, error) {
		videoID, err := toolutil.VideoID(input.Video)
		if err != nil {
			return nil, GetTranscriptOutput{}, err
		}
		mode := input.Mode
		if mode == "" {
			mode = "summary"
		}

		cacheKey := engine.CacheKey("get_transcript", videoID, mode, input.Language, fmt.Sprintf("%d", input.MaxChars))
		if mode != "full" {
			if out, ok := engine.CacheLoadJSON[GetTranscriptOutput](ctx, cacheKey); ok {
				return nil, out, nil
			}
		}

		text, lang, err := toolutil.Transcript(ctx, st, videoID, input.Language)
		if err != nil {
			return nil, GetTranscriptOutput{}, err
		}

		out := GetTranscriptOutput{
			VideoID:   videoID,
			Lang:      lang,
			Mode:      mode,
			CharCount: engine.RuneLen(text),
		}

		switch mode {
		case "summary":
			maxChars := input.MaxChars
			if maxChars <= 0 {
				maxChars = 1500
			}
			out.Summary = engine.Summarize(text, 0, maxChars)
			engine.IncrSummaries()

		case "chunks":
			out.Chunks = chunkText(text)

		case "full":
			path := filepath.Join(os.TempDir(), "yt_transcript_"+videoID+".txt")
			if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
				return nil, GetTranscriptOutput{}, fmt.Errorf("write transcript file: %w", err)
			}
			out.FilePath = path

		default:
			return nil, GetTranscriptOutput{}, fmt.Errorf("unknown mode %q (want summary, full, or chunks)", mode)
		}

		if mode != "full" {
			engine.CacheStoreJSON(ctx, cacheKey, out)
		}
		return nil, out, nil
	})
}

func chunkText(text string) []TranscriptChunk {
	runes := []rune(text)
	var chunks []TranscriptChunk
	for start := 0; start < len(runes); start += chunkChars {
		end := start + chunkChars
		if end > len(runes) {
			end = len(runes)
		}
		piece := string(runes[start:end])
		chunks = append(chunks, TranscriptChunk{
			Index:     len(chunks),
			Text:      piece,
			CharCount: end - start,
		})
	}
	return chunks
}
