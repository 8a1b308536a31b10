package engine

// Shared domain types passed between the sources layer, the store and the
// MCP tools.

// VideoResult is one search hit.
type VideoResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Channel string `json:"channel,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// VideoMetadata is the yt-dlp view of a single video.
type VideoMetadata struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	ChannelID       string `json:"channel_id,omitempty"`
	ChannelName     string `json:"channel_name,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	ViewCount       int64  `json:"view_count,omitempty"`
	UploadDate      string `json:"upload_date,omitempty"`
	Description     string `json:"description,omitempty"`
}

// TimedSegment is one caption cue with timing, in seconds.
type TimedSegment struct {
	Start float64 `json:"start"`
	Dur   float64 `json:"duration"`
	Text  string  `json:"text"`
}

// TranscriptResult is the outcome of a transcript fetch: the best available
// text, its language tag, which fetch path produced it and, when the path
// exposes them, the timed cues.
type TranscriptResult struct {
	Best   string         `json:"best"`
	Lang   string         `json:"lang"`
	Source string         `json:"source"`
	Timed  []TimedSegment `json:"timed,omitempty"`
}

// PlaylistItem is one entry of a playlist listing.
type PlaylistItem struct {
	Position int    `json:"position"`
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
}

// FeedVideo is one entry of a channel RSS feed.
type FeedVideo struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	Published string `json:"published"`
	Link      string `json:"link"`
}
