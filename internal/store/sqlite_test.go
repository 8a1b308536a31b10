package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertVideoInsertAndMerge(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertVideo(ctx, Video{
		VideoID:     "vid00000001",
		ChannelName: "Finance Daily",
		Title:       "Rate decision preview",
		PublishedAt: "2025-02-01T09:00:00Z",
		ViewCount:   1200,
	}))

	v, err := s.GetVideo(ctx, "vid00000001")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, "Rate decision preview", v.Title)
	require.Equal(t, int64(1200), v.ViewCount)
	require.Equal(t, "pending", v.Status)
	require.NotEmpty(t, v.CreatedAt)

	// A later partial write must not clobber the metadata already stored.
	require.NoError(t, s.UpsertVideo(ctx, Video{
		VideoID:          "vid00000001",
		TranscriptText:   "the central bank raised interest rates today",
		TranscriptLang:   "en",
		TranscriptLength: 44,
		Status:           "done",
	}))

	v, err = s.GetVideo(ctx, "vid00000001")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, "Rate decision preview", v.Title)
	require.Equal(t, "Finance Daily", v.ChannelName)
	require.Equal(t, int64(1200), v.ViewCount)
	require.Equal(t, "the central bank raised interest rates today", v.TranscriptText)
	require.Equal(t, "en", v.TranscriptLang)
	require.Equal(t, "done", v.Status)
}

func TestGetVideoAbsent(t *testing.T) {
	s := openTestStore(t)
	v, err := s.GetVideo(context.Background(), "missing0000")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestUpsertVideoRequiresID(t *testing.T) {
	s := openTestStore(t)
	require.Error(t, s.UpsertVideo(context.Background(), Video{Title: "no id"}))
}

func TestSearchTranscripts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertVideo(ctx, Video{
		VideoID:        "vid00000001",
		Title:          "Rates talk",
		ChannelName:    "Finance Daily",
		PublishedAt:    "2025-02-01T09:00:00Z",
		TranscriptText: "the central bank raised interest rates today",
	}))
	require.NoError(t, s.UpsertVideo(ctx, Video{
		VideoID:        "vid00000002",
		Title:          "Older rates talk",
		PublishedAt:    "2025-01-15T09:00:00Z",
		TranscriptText: "interest rates were left unchanged last month",
	}))
	require.NoError(t, s.UpsertVideo(ctx, Video{
		VideoID:        "vid00000003",
		Title:          "Cooking",
		PublishedAt:    "2025-03-01T09:00:00Z",
		TranscriptText: "today we bake bread",
	}))

	hits, err := s.SearchTranscripts(ctx, "interest rates", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	// Newest first.
	require.Equal(t, "vid00000001", hits[0].VideoID)
	require.Equal(t, "vid00000002", hits[1].VideoID)
	require.Contains(t, hits[0].Snippet, "interest rates")
	require.Equal(t, "Finance Daily", hits[0].ChannelName)

	hits, err = s.SearchTranscripts(ctx, "interest rates", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hits, err = s.SearchTranscripts(ctx, "nothing matches this", 10)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestExtractSnippet(t *testing.T) {
	long := strings.Repeat("a", 200) + " NEEDLE " + strings.Repeat("b", 200)
	snippet := ExtractSnippet(long, "needle")
	require.Contains(t, snippet, "NEEDLE")
	require.True(t, strings.HasPrefix(snippet, "..."))
	require.True(t, strings.HasSuffix(snippet, "..."))

	short := "short text with needle inside"
	require.Equal(t, short, ExtractSnippet(short, "needle"))

	// No match falls back to a truncated prefix.
	out := ExtractSnippet(strings.Repeat("x", 400), "absent")
	require.LessOrEqual(t, len(out), 303)
}

func TestChannelLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertChannel(ctx, Channel{
		ChannelID:   "UCchannel01",
		ChannelName: "Finance Daily",
		ChannelURL:  "https://www.youtube.com/channel/UCchannel01",
		Enabled:     true,
	}))

	c, err := s.GetChannel(ctx, "UCchannel01")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.True(t, c.Enabled)
	require.Empty(t, c.LastCheckedAt)

	list, err := s.ListChannels(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.MarkChannelChecked(ctx, "UCchannel01"))
	c, err = s.GetChannel(ctx, "UCchannel01")
	require.NoError(t, err)
	_, perr := time.Parse(time.RFC3339, c.LastCheckedAt)
	require.NoError(t, perr)

	// Upserting without a URL keeps the stored one.
	require.NoError(t, s.UpsertChannel(ctx, Channel{
		ChannelID:   "UCchannel01",
		ChannelName: "Finance Daily",
		Enabled:     true,
	}))
	c, err = s.GetChannel(ctx, "UCchannel01")
	require.NoError(t, err)
	require.Equal(t, "https://www.youtube.com/channel/UCchannel01", c.ChannelURL)

	// Disabling hides the channel from the monitored list but keeps the row.
	require.NoError(t, s.UpsertChannel(ctx, Channel{
		ChannelID:   "UCchannel01",
		ChannelName: "Finance Daily",
		Enabled:     false,
	}))
	list, err = s.ListChannels(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
	c, err = s.GetChannel(ctx, "UCchannel01")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.False(t, c.Enabled)
}

func TestGetChannelAbsent(t *testing.T) {
	s := openTestStore(t)
	c, err := s.GetChannel(context.Background(), "UCmissing00")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestSaveAndGetComments(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	batch := []engine.Comment{
		{CommentID: "c1", Author: "alice", Text: "great breakdown", LikeCount: 5},
		{CommentID: "c2", Author: "bob", Text: "very helpful", LikeCount: 10},
		{CommentID: "c3", Author: "carol", Text: "thanks", LikeCount: 1},
	}
	require.NoError(t, s.SaveComments(ctx, "vid00000001", batch))
	// Re-saving the same batch must not duplicate rows.
	require.NoError(t, s.SaveComments(ctx, "vid00000001", batch))

	got, err := s.GetComments(ctx, "vid00000001", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "c2", got[0].CommentID)
	require.Equal(t, "c1", got[1].CommentID)
	require.Equal(t, "c3", got[2].CommentID)
	require.Equal(t, "bob", got[0].Author)

	got, err = s.GetComments(ctx, "vid00000001", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.GetComments(ctx, "othervideo0", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}
