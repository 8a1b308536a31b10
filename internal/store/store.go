// Package store persists analyzed videos, monitored channels and collected
// comments. Two backends share one interface: SQLite for the default
// single-binary setup and PostgreSQL for shared deployments.
package store

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

// Video is one analyzed video row. Zero-valued fields are treated as
// "not provided" by UpsertVideo and never clobber stored data.
type Video struct {
	VideoID          string `json:"video_id"`
	ChannelID        string `json:"channel_id,omitempty"`
	ChannelName      string `json:"channel_name,omitempty"`
	Title            string `json:"title,omitempty"`
	Description      string `json:"description,omitempty"`
	PublishedAt      string `json:"published_at,omitempty"`
	DurationSeconds  int    `json:"duration_seconds,omitempty"`
	ViewCount        int64  `json:"view_count,omitempty"`
	LikeCount        int64  `json:"like_count,omitempty"`
	CommentCount     int64  `json:"comment_count,omitempty"`
	TranscriptText   string `json:"transcript_text,omitempty"`
	TranscriptLang   string `json:"transcript_lang,omitempty"`
	TranscriptLength int    `json:"transcript_length,omitempty"`
	Summary          string `json:"summary,omitempty"`
	Status           string `json:"status,omitempty"`
	CollectedAt      string `json:"collected_at,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// Channel is one monitored channel row.
type Channel struct {
	ChannelID     string `json:"channel_id"`
	ChannelName   string `json:"channel_name"`
	ChannelURL    string `json:"channel_url,omitempty"`
	Enabled       bool   `json:"enabled"`
	LastCheckedAt string `json:"last_checked_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// StoredComment is one persisted comment row.
type StoredComment struct {
	ID          int64  `json:"id"`
	VideoID     string `json:"video_id"`
	CommentID   string `json:"comment_id"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	LikeCount   int    `json:"like_count"`
	CollectedAt string `json:"collected_at,omitempty"`
}

// TranscriptHit is one transcript search result with a context snippet.
type TranscriptHit struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	ChannelName string `json:"channel_name,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Snippet     string `json:"snippet"`
}

// Store is the persistence interface consumed by the MCP tools.
// GetVideo and GetChannel return nil (not an error) when absent.
type Store interface {
	GetVideo(ctx context.Context, videoID string) (*Video, error)
	UpsertVideo(ctx context.Context, v Video) error
	SearchTranscripts(ctx context.Context, query string, limit int) ([]TranscriptHit, error)

	GetChannel(ctx context.Context, channelID string) (*Channel, error)
	UpsertChannel(ctx context.Context, c Channel) error
	ListChannels(ctx context.Context) ([]Channel, error)
	MarkChannelChecked(ctx context.Context, channelID string) error

	SaveComments(ctx context.Context, videoID string, comments []engine.Comment) error
	GetComments(ctx context.Context, videoID string, limit int) ([]StoredComment, error)

	Close() error
}

// Open creates a Store for the given driver: "sqlite" (dsn is a file path)
// or "postgres" (dsn is a connection URL).
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "sqlite":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}

// ExtractSnippet returns ~300 chars of context around the first
// case-insensitive occurrence of query in text, or a plain prefix when the
// query does not appear (LIKE matched on another column's casing).
func ExtractSnippet(text, query string) string {
	const contextChars = 150
	idx := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if idx < 0 {
		return engine.Truncate(text, 300)
	}
	start := idx - contextChars
	if start < 0 {
		start = 0
	}
	// Keep offsets on rune boundaries.
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	end := idx + len(query) + contextChars
	if end > len(text) {
		end = len(text)
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}
	return snippet
}

// mergeVideo overlays non-zero fields of in onto base, mirroring the
// partial-update semantics of UpsertVideo.
func mergeVideo(base, in Video) Video {
	out := base
	if in.ChannelID != "" {
		out.ChannelID = in.ChannelID
	}
	if in.ChannelName != "" {
		out.ChannelName = in.ChannelName
	}
	if in.Title != "" {
		out.Title = in.Title
	}
	if in.Description != "" {
		out.Description = in.Description
	}
	if in.PublishedAt != "" {
		out.PublishedAt = in.PublishedAt
	}
	if in.DurationSeconds != 0 {
		out.DurationSeconds = in.DurationSeconds
	}
	if in.ViewCount != 0 {
		out.ViewCount = in.ViewCount
	}
	if in.LikeCount != 0 {
		out.LikeCount = in.LikeCount
	}
	if in.CommentCount != 0 {
		out.CommentCount = in.CommentCount
	}
	if in.TranscriptText != "" {
		out.TranscriptText = in.TranscriptText
	}
	if in.TranscriptLang != "" {
		out.TranscriptLang = in.TranscriptLang
	}
	if in.TranscriptLength != 0 {
		out.TranscriptLength = in.TranscriptLength
	}
	if in.Summary != "" {
		out.Summary = in.Summary
	}
	if in.Status != "" {
		out.Status = in.Status
	}
	if in.CollectedAt != "" {
		out.CollectedAt = in.CollectedAt
	}
	return out
}
