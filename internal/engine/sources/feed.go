package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

// Channel monitoring via YouTube RSS feeds, with a yt-dlp fallback when the
// feed is unreachable or empty.

const (
	rssMaxRetries = 2
	rssRetryDelay = time.Second
)

// FetchChannelFeed returns the recent videos of a channel from its RSS feed.
// Falls back to yt-dlp flat-playlist listing after retries are exhausted.
func FetchChannelFeed(ctx context.Context, channelID string) ([]engine.FeedVideo, error) {
	engine.IncrFeedRequests()
	feedURL := "https://www.youtube.com/feeds/videos.xml?channel_id=" + channelID

	parser := gofeed.NewParser()
	parser.Client = engine.HTTPClient()
	parser.UserAgent = engine.UserAgentBot

	for attempt := 0; attempt < rssMaxRetries; attempt++ {
		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err == nil {
			videos := feedVideos(feed)
			if len(videos) > 0 {
				return videos, nil
			}
		} else {
			slog.Warn("rss fetch failed", slog.String("channel", channelID),
				slog.Int("attempt", attempt+1), slog.Any("error", err))
		}
		if attempt < rssMaxRetries-1 {
			select {
			case <-time.After(rssRetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	slog.Info("rss failed, falling back to yt-dlp", slog.String("channel", channelID))
	videos, err := FetchChannelVideos(ctx, channelID, 5)
	if err != nil {
		return nil, fmt.Errorf("channel feed unavailable for %s: %w", channelID, err)
	}
	return videos, nil
}

func feedVideos(feed *gofeed.Feed) []engine.FeedVideo {
	videos := make([]engine.FeedVideo, 0, len(feed.Items))
	for _, item := range feed.Items {
		vid := ""
		if ext, ok := item.Extensions["yt"]; ok {
			if ids, ok := ext["videoId"]; ok && len(ids) > 0 {
				vid = ids[0].Value
			}
		}
		if vid == "" {
			vid = ExtractVideoID(item.Link)
		}
		if vid == "" {
			continue
		}
		published := item.Published
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		videos = append(videos, engine.FeedVideo{
			VideoID:   vid,
			Title:     item.Title,
			Published: published,
			Link:      item.Link,
		})
	}
	return videos
}
