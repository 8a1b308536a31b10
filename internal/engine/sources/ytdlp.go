package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

// yt-dlp subprocess integration. Used for metadata, comments, playlists and
// as the last-resort transcript path. Every invocation gets its own timeout
// so a hung subprocess never wedges a tool call.

const ytDlpTimeout = 90 * time.Second

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func runYtDlp(ctx context.Context, args ...string) ([]byte, error) {
	engine.IncrYtDlpInvocations()
	bin := engine.Cfg.YtDlpPath
	if bin == "" {
		bin = "yt-dlp"
	}
	ctx, cancel := context.WithTimeout(ctx, ytDlpTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("yt-dlp: %s", engine.Truncate(string(exitErr.Stderr), 200))
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}
	return out, nil
}

// ytDlpInfo is the subset of a yt-dlp info JSON we consume.
type ytDlpInfo struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	ChannelID   string         `json:"channel_id"`
	Channel     string         `json:"channel"`
	Uploader    string         `json:"uploader"`
	Duration    float64        `json:"duration"`
	ViewCount   int64          `json:"view_count"`
	UploadDate  string         `json:"upload_date"`
	Description string         `json:"description"`
	Comments    []ytDlpComment `json:"comments"`
	Entries     []ytDlpEntry   `json:"entries"`
}

type ytDlpComment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int    `json:"like_count"`
}

type ytDlpEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Uploader    string `json:"uploader"`
	Description string `json:"description"`
}

// FetchVideoMetadata returns yt-dlp metadata for a single video.
func FetchVideoMetadata(ctx context.Context, videoID string) (engine.VideoMetadata, error) {
	out, err := runYtDlp(ctx, "-J", "--skip-download", "--no-warnings", watchURL(videoID))
	if err != nil {
		return engine.VideoMetadata{}, err
	}
	var info ytDlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return engine.VideoMetadata{}, fmt.Errorf("parse info json: %w", err)
	}
	channel := info.Channel
	if channel == "" {
		channel = info.Uploader
	}
	return engine.VideoMetadata{
		VideoID:         info.ID,
		Title:           info.Title,
		ChannelID:       info.ChannelID,
		ChannelName:     channel,
		DurationSeconds: int(info.Duration),
		ViewCount:       info.ViewCount,
		UploadDate:      info.UploadDate,
		Description:     info.Description,
	}, nil
}

// FetchComments fetches comments via yt-dlp, classifies sentiment and
// filters noise. sort is "top" or "newest"; sentiment filters to
// "positive"/"negative" when not "all". With noise filtering on, three
// times the requested count is fetched so the filter has room to discard.
func FetchComments(ctx context.Context, videoID string, maxComments int, sort, sentiment string, filterNoise bool) ([]engine.Comment, error) {
	engine.IncrCommentRequests()
	if maxComments <= 0 {
		maxComments = engine.Cfg.MaxComments
	}
	sortArg := "top"
	if sort == "newest" {
		sortArg = "new"
	}
	fetchCount := maxComments
	if filterNoise {
		fetchCount = maxComments * 3
	}

	tmpdir, err := os.MkdirTemp("", "ytcomments-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpdir)

	_, err = runYtDlp(ctx,
		"--write-comments",
		"--extractor-args", fmt.Sprintf("youtube:comment_sort=%s;max_comments=%d", sortArg, fetchCount),
		"--skip-download", "--write-info-json", "--no-warnings",
		"-o", filepath.Join(tmpdir, "%(id)s.%(ext)s"),
		watchURL(videoID),
	)
	if err != nil {
		return nil, err
	}

	matches, _ := filepath.Glob(filepath.Join(tmpdir, "*.info.json"))
	if len(matches) == 0 {
		return nil, errors.New("yt-dlp produced no info json")
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, err
	}
	var info ytDlpInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse info json: %w", err)
	}

	comments := make([]engine.Comment, 0, maxComments)
	for _, c := range info.Comments {
		if filterNoise && engine.IsNoiseComment(c.Text) {
			continue
		}
		sent := engine.AnalyzeSentiment(c.Text)
		if sentiment != "" && sentiment != "all" && sent != sentiment {
			continue
		}
		comments = append(comments, engine.Comment{
			CommentID: c.ID,
			Author:    c.Author,
			Text:      c.Text,
			LikeCount: c.LikeCount,
			Sentiment: sent,
		})
		if len(comments) >= maxComments {
			break
		}
	}
	return comments, nil
}

// fetchTranscriptYtDlp downloads subtitle files and parses them. Last
// resort after all Innertube paths failed.
func fetchTranscriptYtDlp(ctx context.Context, videoID string, langs []string) (engine.TranscriptResult, error) {
	tmpdir, err := os.MkdirTemp("", "ytsubs-*")
	if err != nil {
		return engine.TranscriptResult{}, err
	}
	defer os.RemoveAll(tmpdir)

	subLangs := strings.Join(langs, ",")
	if subLangs == "" {
		subLangs = "ko,en"
	}
	_, err = runYtDlp(ctx,
		"--write-subs", "--write-auto-subs",
		"--sub-langs", subLangs,
		"--sub-format", "vtt/srt",
		"--skip-download", "--no-warnings",
		"-o", filepath.Join(tmpdir, "%(id)s.%(ext)s"),
		watchURL(videoID),
	)
	if err != nil {
		return engine.TranscriptResult{}, err
	}

	// Subtitle files land as <id>.<lang>.<ext>; honor the preference order.
	tryLangs := make([]string, 0, len(langs)+1)
	tryLangs = append(tryLangs, langs...)
	tryLangs = append(tryLangs, "")
	for _, lang := range tryLangs {
		pattern := filepath.Join(tmpdir, "*."+lang+".*")
		if lang == "" {
			pattern = filepath.Join(tmpdir, "*.*")
		}
		matches, _ := filepath.Glob(pattern)
		for _, path := range matches {
			segs, fileLang := parseSubtitleFile(path)
			if len(segs) == 0 {
				continue
			}
			if fileLang == "" {
				fileLang = lang
			}
			text := JoinSegments(segs)
			if fileLang == "" {
				fileLang = DetectLang(text)
			}
			return engine.TranscriptResult{
				Best:   text,
				Lang:   fileLang,
				Source: "yt-dlp",
				Timed:  segs,
			}, nil
		}
	}
	return engine.TranscriptResult{}, errors.New("no usable subtitle files")
}

func parseSubtitleFile(path string) ([]engine.TimedSegment, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ""
	}
	// <id>.<lang>.<ext>
	lang := ""
	base := filepath.Base(path)
	if parts := strings.Split(base, "."); len(parts) >= 3 {
		lang = parts[len(parts)-2]
	}
	switch filepath.Ext(path) {
	case ".vtt":
		return ParseVTT(string(data)), lang
	case ".srt":
		return ParseSRT(string(data)), lang
	}
	return nil, ""
}

// FetchPlaylist lists the entries of a playlist without downloading.
func FetchPlaylist(ctx context.Context, playlistID string, limit int) ([]engine.PlaylistItem, error) {
	engine.IncrPlaylistRequests()
	if limit <= 0 {
		limit = 50
	}
	out, err := runYtDlp(ctx,
		"-J", "--flat-playlist", "--no-warnings",
		"--playlist-items", fmt.Sprintf("1:%d", limit),
		"https://www.youtube.com/playlist?list="+playlistID,
	)
	if err != nil {
		return nil, err
	}
	var info ytDlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parse playlist json: %w", err)
	}
	items := make([]engine.PlaylistItem, 0, len(info.Entries))
	for i, e := range info.Entries {
		if e.ID == "" {
			continue
		}
		items = append(items, engine.PlaylistItem{Position: i + 1, VideoID: e.ID, Title: e.Title})
	}
	return items, nil
}

// searchYtDlp runs a yt-dlp "ytsearchN:" query. Last-resort search path when
// both the Data API and the results-page scrape fail.
func searchYtDlp(ctx context.Context, query string, limit int) ([]engine.VideoResult, error) {
	out, err := runYtDlp(ctx,
		"-J", "--flat-playlist", "--no-warnings",
		fmt.Sprintf("ytsearch%d:%s", limit, query),
	)
	if err != nil {
		return nil, err
	}
	var info ytDlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parse search json: %w", err)
	}
	videos := make([]engine.VideoResult, 0, len(info.Entries))
	for _, e := range info.Entries {
		if e.ID == "" {
			continue
		}
		channel := e.Channel
		if channel == "" {
			channel = e.Uploader
		}
		videos = append(videos, engine.VideoResult{
			ID:      e.ID,
			Title:   e.Title,
			URL:     watchURL(e.ID),
			Channel: channel,
			Snippet: engine.Truncate(e.Description, 200),
		})
	}
	return videos, nil
}

// FetchChannelVideos lists a channel's recent uploads. Fallback for the RSS
// feed path.
func FetchChannelVideos(ctx context.Context, channelID string, limit int) ([]engine.FeedVideo, error) {
	if limit <= 0 {
		limit = 5
	}
	out, err := runYtDlp(ctx,
		"-J", "--flat-playlist", "--no-warnings",
		"--playlist-items", fmt.Sprintf("1:%d", limit),
		"https://www.youtube.com/channel/"+channelID+"/videos",
	)
	if err != nil {
		return nil, err
	}
	var info ytDlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parse channel json: %w", err)
	}
	videos := make([]engine.FeedVideo, 0, len(info.Entries))
	for _, e := range info.Entries {
		if e.ID == "" {
			continue
		}
		videos = append(videos, engine.FeedVideo{
			VideoID: e.ID,
			Title:   e.Title,
			Link:    watchURL(e.ID),
		})
	}
	return videos, nil
}

// ResolveChannelID turns any channel URL or @handle into a UC... channel id.
// Pass-through for strings that already look like channel ids.
func ResolveChannelID(ctx context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "UC") && len(ref) == 24 {
		return ref, nil
	}
	target := ref
	if strings.HasPrefix(ref, "@") {
		target = "https://www.youtube.com/" + ref
	} else if !strings.Contains(ref, "://") {
		target = "https://www.youtube.com/@" + ref
	}
	out, err := runYtDlp(ctx,
		"--print", "%(channel_id)s",
		"--playlist-items", "1",
		"--flat-playlist", "--no-warnings",
		target,
	)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	if id == "" || id == "NA" {
		return "", fmt.Errorf("could not resolve channel id for %q", ref)
	}
	return id, nil
}
