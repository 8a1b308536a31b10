package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

// YouTube video search — Data API v3 when a key is configured, ytInitialData
// scraping otherwise.

const (
	ytDataAPIBase       = "https://www.googleapis.com/youtube/v3"
	ytInitialDataMarker = "var ytInitialData = "
	ytSearchFilter      = "EgIQAQ%3D%3D" // videos-only filter param
)

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format.
// Bare 11-char ids pass through unchanged.
func ExtractVideoID(ref string) string {
	if m := videoIDRE.FindStringSubmatch(ref); len(m) >= 2 {
		return m[1]
	}
	if len(ref) == 11 && !strings.ContainsAny(ref, "/?&.") {
		return ref
	}
	return ""
}

// --- YouTube Data API v3 types ---

type ytDataSearchResp struct {
	Items []ytDataItem `json:"items"`
}

type ytDataItem struct {
	ID      ytDataItemID      `json:"id"`
	Snippet ytDataItemSnippet `json:"snippet"`
}

type ytDataItemID struct {
	VideoID string `json:"videoId"`
}

type ytDataItemSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
}

// --- ytInitialData scraping types ---

type ytVideoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []struct{ Text string } `json:"runs"`
	} `json:"title"`
	OwnerText struct {
		Runs []struct{ Text string } `json:"runs"`
	} `json:"ownerText"`
	DescriptionSnippet *struct {
		Runs []struct{ Text string } `json:"runs"`
	} `json:"descriptionSnippet"`
}

// SearchOptions narrows a video search. ChannelID, Order and PublishedAfter
// require a Data API key; the scrape fallback honours only the query.
type SearchOptions struct {
	Language       string
	ChannelID      string
	Order          string // relevance (default), date, viewCount, rating
	PublishedAfter string // RFC3339
	Limit          int
}

// SearchVideos searches YouTube videos.
// Uses YouTube Data API v3 when a key is configured; otherwise scrapes ytInitialData.
func SearchVideos(ctx context.Context, query string, opts SearchOptions) ([]engine.VideoResult, error) {
	engine.IncrSearchRequests()
	if opts.Limit <= 0 || opts.Limit > 20 {
		opts.Limit = 5
	}
	if engine.Cfg.YouTubeAPIKey != "" {
		videos, err := searchDataAPI(ctx, query, opts)
		if err == nil {
			return videos, nil
		}
		slog.Warn("youtube: data API failed, scraping", slog.Any("err", err))
	} else if opts.ChannelID != "" || opts.Order != "" || opts.PublishedAfter != "" {
		slog.Debug("youtube: search filters ignored without a data API key")
	}
	videos, err := searchInitialData(ctx, query, opts.Limit)
	if err == nil {
		return videos, nil
	}
	slog.Warn("youtube: scrape failed, trying yt-dlp", slog.Any("err", err))
	return searchYtDlp(ctx, query, opts.Limit)
}

// searchDataAPI searches via YouTube Data API v3.
// Automatically falls back to the secondary key on quota errors (403).
func searchDataAPI(ctx context.Context, query string, opts SearchOptions) ([]engine.VideoResult, error) {
	keys := []string{engine.Cfg.YouTubeAPIKey}
	if engine.Cfg.YouTubeAPIKeyFallback != "" {
		keys = append(keys, engine.Cfg.YouTubeAPIKeyFallback)
	}
	var lastErr error
	for _, key := range keys {
		videos, err := doDataSearch(ctx, query, opts, key)
		if err == nil {
			return videos, nil
		}
		lastErr = err
		slog.Debug("youtube data API key failed, trying fallback", slog.Any("err", err))
	}
	return nil, lastErr
}

func doDataSearch(ctx context.Context, query string, opts SearchOptions, apiKey string) ([]engine.VideoResult, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", opts.Limit))
	params.Set("key", apiKey)
	if opts.Language != "" && opts.Language != "all" {
		params.Set("relevanceLanguage", opts.Language)
	}
	if opts.ChannelID != "" {
		params.Set("channelId", opts.ChannelID)
	}
	if opts.Order != "" && opts.Order != "relevance" {
		params.Set("order", opts.Order)
	}
	if opts.PublishedAfter != "" {
		params.Set("publishedAfter", opts.PublishedAfter)
	}

	apiURL := ytDataAPIBase + "/search?" + params.Encode()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("youtube data API %d: %s", resp.StatusCode, string(body))
	}

	var result ytDataSearchResp
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode youtube data API: %w", err)
	}

	videos := make([]engine.VideoResult, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, engine.VideoResult{
			ID:      item.ID.VideoID,
			Title:   item.Snippet.Title,
			URL:     "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Channel: item.Snippet.ChannelTitle,
			Snippet: engine.Truncate(item.Snippet.Description, 200),
		})
	}
	return videos, nil
}

// searchInitialData scrapes YouTube search results by parsing ytInitialData.
func searchInitialData(ctx context.Context, query string, limit int) ([]engine.VideoResult, error) {
	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query) + "&sp=" + ytSearchFilter

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("youtube search page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read youtube search response: %w", err)
	}

	idx := strings.Index(string(body), ytInitialDataMarker)
	if idx < 0 {
		return nil, fmt.Errorf("ytInitialData not found in YouTube search response")
	}
	jsonData := extractJSON(body[idx+len(ytInitialDataMarker):])
	if jsonData == nil {
		return nil, fmt.Errorf("failed to extract ytInitialData JSON")
	}
	return videosFromInitialData(jsonData, limit), nil
}

// videosFromInitialData recursively walks ytInitialData JSON for videoRenderer entries.
func videosFromInitialData(data []byte, limit int) []engine.VideoResult {
	var results []engine.VideoResult
	var walk func(v json.RawMessage)
	walk = func(v json.RawMessage) {
		if len(results) >= limit {
			return
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(v, &obj); err == nil {
			if raw, ok := obj["videoRenderer"]; ok {
				var vr ytVideoRenderer
				if err := json.Unmarshal(raw, &vr); err == nil && vr.VideoID != "" {
					title := ""
					if len(vr.Title.Runs) > 0 {
						title = vr.Title.Runs[0].Text
					}
					channel := ""
					if len(vr.OwnerText.Runs) > 0 {
						channel = vr.OwnerText.Runs[0].Text
					}
					var snippetParts []string
					if vr.DescriptionSnippet != nil {
						for _, r := range vr.DescriptionSnippet.Runs {
							snippetParts = append(snippetParts, r.Text)
						}
					}
					results = append(results, engine.VideoResult{
						ID:      vr.VideoID,
						Title:   title,
						URL:     "https://www.youtube.com/watch?v=" + vr.VideoID,
						Channel: channel,
						Snippet: engine.Truncate(strings.Join(snippetParts, ""), 200),
					})
					return
				}
			}
			for _, child := range obj {
				if len(results) >= limit {
					return
				}
				walk(child)
			}
			return
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(v, &arr); err == nil {
			for _, item := range arr {
				if len(results) >= limit {
					return
				}
				walk(item)
			}
		}
	}
	walk(data)
	return results
}
