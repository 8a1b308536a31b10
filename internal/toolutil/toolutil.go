// Package toolutil provides shared helpers for the YouTube intelligence MCP
// tools: language normalisation and the cache-aside transcript path used by
// every transcript-consuming tool.
package toolutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine/sources"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
)

// NormLang normalises a language field: empty string → "all".
func NormLang(lang string) string {
	if lang == "" {
		return "all"
	}
	return lang
}

// PreferredLangs builds the transcript language preference list. A requested
// language goes first, then the configured defaults.
func PreferredLangs(lang string) []string {
	defaults := engine.Cfg.TranscriptLangs
	if lang == "" {
		return defaults
	}
	langs := make([]string, 0, len(defaults)+1)
	langs = append(langs, lang)
	for _, l := range defaults {
		if l != lang {
			langs = append(langs, l)
		}
	}
	return langs
}

// VideoID resolves a video reference (URL or bare ID) or errors.
func VideoID(ref string) (string, error) {
	id := sources.ExtractVideoID(ref)
	if id == "" {
		return "", fmt.Errorf("invalid video reference: %q", ref)
	}
	return id, nil
}

// Transcript returns the cleaned transcript for a video, cache-aside on the
// store: a stored transcript wins, a fetched one is persisted before return.
func Transcript(ctx context.Context, st store.Store, videoID, lang string) (text, detectedLang string, err error) {
	if v, err := st.GetVideo(ctx, videoID); err == nil && v != nil && v.TranscriptText != "" {
		return v.TranscriptText, v.TranscriptLang, nil
	}

	res, err := sources.FetchTranscript(ctx, videoID, PreferredLangs(lang))
	if err != nil {
		return "", "", err
	}
	cleaned := engine.Clean(res.Best)

	if err := st.UpsertVideo(ctx, store.Video{
		VideoID:          videoID,
		TranscriptText:   cleaned,
		TranscriptLang:   res.Lang,
		TranscriptLength: engine.RuneLen(cleaned),
	}); err != nil {
		slog.Warn("transcript persist failed", slog.String("video_id", videoID), slog.Any("error", err))
	}
	return cleaned, res.Lang, nil
}
