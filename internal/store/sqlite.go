package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS channels (
	channel_id      TEXT PRIMARY KEY,
	channel_name    TEXT NOT NULL,
	channel_url     TEXT,
	enabled         INTEGER DEFAULT 1,
	last_checked_at TEXT,
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS videos (
	video_id          TEXT PRIMARY KEY,
	channel_id        TEXT,
	channel_name      TEXT,
	title             TEXT,
	description       TEXT,
	published_at      TEXT,
	duration_seconds  INTEGER,
	view_count        INTEGER,
	like_count        INTEGER,
	comment_count     INTEGER,
	transcript_text   TEXT,
	transcript_lang   TEXT,
	transcript_length INTEGER,
	summary           TEXT,
	status            TEXT DEFAULT 'pending',
	collected_at      TEXT,
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id     TEXT,
	comment_id   TEXT UNIQUE,
	author       TEXT,
	text         TEXT,
	like_count   INTEGER DEFAULT 0,
	collected_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_videos_channel ON videos(channel_id);
CREATE INDEX IF NOT EXISTS idx_videos_status ON videos(status);
CREATE INDEX IF NOT EXISTS idx_comments_video ON comments(video_id);
`

// SQLiteStore is the default single-file backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func (s *SQLiteStore) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT video_id, channel_id, channel_name, title, description, published_at,
		       duration_seconds, view_count, like_count, comment_count,
		       transcript_text, transcript_lang, transcript_length,
		       summary, status, collected_at, created_at, updated_at
		FROM videos WHERE video_id = ?`, videoID)
	var v Video
	var channelID, channelName, title, description, publishedAt sql.NullString
	var durationSeconds, transcriptLength sql.NullInt64
	var viewCount, likeCount, commentCount sql.NullInt64
	var transcriptText, transcriptLang, summary, status, collectedAt sql.NullString
	err := row.Scan(&v.VideoID, &channelID, &channelName, &title, &description, &publishedAt,
		&durationSeconds, &viewCount, &likeCount, &commentCount,
		&transcriptText, &transcriptLang, &transcriptLength,
		&summary, &status, &collectedAt, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get video: %w", err)
	}
	v.ChannelID = channelID.String
	v.ChannelName = channelName.String
	v.Title = title.String
	v.Description = description.String
	v.PublishedAt = publishedAt.String
	v.DurationSeconds = int(durationSeconds.Int64)
	v.ViewCount = viewCount.Int64
	v.LikeCount = likeCount.Int64
	v.CommentCount = commentCount.Int64
	v.TranscriptText = transcriptText.String
	v.TranscriptLang = transcriptLang.String
	v.TranscriptLength = int(transcriptLength.Int64)
	v.Summary = summary.String
	v.Status = status.String
	v.CollectedAt = collectedAt.String
	return &v, nil
}

func (s *SQLiteStore) UpsertVideo(ctx context.Context, in Video) error {
	if in.VideoID == "" {
		return errors.New("store: video_id required")
	}
	existing, err := s.GetVideo(ctx, in.VideoID)
	if err != nil {
		return err
	}
	ts := now()
	v := in
	if existing != nil {
		v = mergeVideo(*existing, in)
		v.UpdatedAt = ts
	} else {
		v.CreatedAt = ts
		v.UpdatedAt = ts
		if v.Status == "" {
			v.Status = "pending"
		}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO videos (video_id, channel_id, channel_name, title, description, published_at,
			duration_seconds, view_count, like_count, comment_count,
			transcript_text, transcript_lang, transcript_length,
			summary, status, collected_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			channel_id = excluded.channel_id,
			channel_name = excluded.channel_name,
			title = excluded.title,
			description = excluded.description,
			published_at = excluded.published_at,
			duration_seconds = excluded.duration_seconds,
			view_count = excluded.view_count,
			like_count = excluded.like_count,
			comment_count = excluded.comment_count,
			transcript_text = excluded.transcript_text,
			transcript_lang = excluded.transcript_lang,
			transcript_length = excluded.transcript_length,
			summary = excluded.summary,
			status = excluded.status,
			collected_at = excluded.collected_at,
			updated_at = excluded.updated_at`,
		v.VideoID, v.ChannelID, v.ChannelName, v.Title, v.Description, v.PublishedAt,
		v.DurationSeconds, v.ViewCount, v.LikeCount, v.CommentCount,
		v.TranscriptText, v.TranscriptLang, v.TranscriptLength,
		v.Summary, v.Status, v.CollectedAt, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: upsert video: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SearchTranscripts(ctx context.Context, query string, limit int) ([]TranscriptHit, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT video_id, title, channel_name, published_at, transcript_text
		FROM videos
		WHERE transcript_text LIKE ?
		ORDER BY published_at DESC
		LIMIT ?`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("store: search transcripts: %w", err)
	}
	defer rows.Close()

	var hits []TranscriptHit
	for rows.Next() {
		var h TranscriptHit
		var title, channelName, publishedAt, text sql.NullString
		if err := rows.Scan(&h.VideoID, &title, &channelName, &publishedAt, &text); err != nil {
			return nil, err
		}
		h.Title = title.String
		h.ChannelName = channelName.String
		h.PublishedAt = publishedAt.String
		h.Snippet = ExtractSnippet(text.String, query)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (s *SQLiteStore) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT channel_id, channel_name, channel_url, enabled, last_checked_at, created_at, updated_at
		FROM channels WHERE channel_id = ?`, channelID)
	var c Channel
	var channelURL, lastChecked sql.NullString
	var enabled int
	err := row.Scan(&c.ChannelID, &c.ChannelName, &channelURL, &enabled, &lastChecked, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get channel: %w", err)
	}
	c.ChannelURL = channelURL.String
	c.LastCheckedAt = lastChecked.String
	c.Enabled = enabled != 0
	return &c, nil
}

func (s *SQLiteStore) UpsertChannel(ctx context.Context, in Channel) error {
	if in.ChannelID == "" {
		return errors.New("store: channel_id required")
	}
	ts := now()
	enabled := 0
	if in.Enabled {
		enabled = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO channels (channel_id, channel_name, channel_url, enabled, last_checked_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(channel_id) DO UPDATE SET
			channel_name = excluded.channel_name,
			channel_url = CASE WHEN excluded.channel_url != '' THEN excluded.channel_url ELSE channels.channel_url END,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at`,
		in.ChannelID, in.ChannelName, in.ChannelURL, enabled, in.LastCheckedAt, ts, ts)
	if err != nil {
		return fmt.Errorf("store: upsert channel: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListChannels(ctx context.Context) ([]Channel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT channel_id, channel_name, channel_url, enabled, last_checked_at, created_at, updated_at
		FROM channels WHERE enabled = 1 ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list channels: %w", err)
	}
	defer rows.Close()

	var channels []Channel
	for rows.Next() {
		var c Channel
		var channelURL, lastChecked sql.NullString
		var enabled int
		if err := rows.Scan(&c.ChannelID, &c.ChannelName, &channelURL, &enabled, &lastChecked, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.ChannelURL = channelURL.String
		c.LastCheckedAt = lastChecked.String
		c.Enabled = enabled != 0
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

func (s *SQLiteStore) MarkChannelChecked(ctx context.Context, channelID string) error {
	ts := now()
	_, err := s.db.ExecContext(ctx,
		`UPDATE channels SET last_checked_at = ?, updated_at = ? WHERE channel_id = ?`,
		ts, ts, channelID)
	if err != nil {
		return fmt.Errorf("store: mark channel checked: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveComments(ctx context.Context, videoID string, comments []engine.Comment) error {
	ts := now()
	for _, c := range comments {
		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO comments (video_id, comment_id, author, text, like_count, collected_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			videoID, c.CommentID, c.Author, c.Text, c.LikeCount, ts)
		if err != nil {
			return fmt.Errorf("store: save comment: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetComments(ctx context.Context, videoID string, limit int) ([]StoredComment, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_id, comment_id, author, text, like_count, collected_at
		FROM comments WHERE video_id = ? ORDER BY like_count DESC LIMIT ?`,
		videoID, limit)
	if err != nil {
		return nil, fmt.Errorf("store: get comments: %w", err)
	}
	defer rows.Close()

	var comments []StoredComment
	for rows.Next() {
		var c StoredComment
		var author, text sql.NullString
		if err := rows.Scan(&c.ID, &c.VideoID, &c.CommentID, &author, &text, &c.LikeCount, &c.CollectedAt); err != nil {
			return nil, err
		}
		c.Author = author.String
		c.Text = text.String
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
