package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS channels (
	channel_id      TEXT PRIMARY KEY,
	channel_name    TEXT NOT NULL,
	channel_url     TEXT DEFAULT '',
	enabled         BOOLEAN DEFAULT TRUE,
	last_checked_at TEXT DEFAULT '',
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS videos (
	video_id          TEXT PRIMARY KEY,
	channel_id        TEXT DEFAULT '',
	channel_name      TEXT DEFAULT '',
	title             TEXT DEFAULT '',
	description       TEXT DEFAULT '',
	published_at      TEXT DEFAULT '',
	duration_seconds  INTEGER DEFAULT 0,
	view_count        BIGINT DEFAULT 0,
	like_count        BIGINT DEFAULT 0,
	comment_count     BIGINT DEFAULT 0,
	transcript_text   TEXT DEFAULT '',
	transcript_lang   TEXT DEFAULT '',
	transcript_length INTEGER DEFAULT 0,
	summary           TEXT DEFAULT '',
	status            TEXT DEFAULT 'pending',
	collected_at      TEXT DEFAULT '',
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id           BIGSERIAL PRIMARY KEY,
	video_id     TEXT,
	comment_id   TEXT UNIQUE,
	author       TEXT DEFAULT '',
	text         TEXT DEFAULT '',
	like_count   INTEGER DEFAULT 0,
	collected_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_videos_channel ON videos(channel_id);
CREATE INDEX IF NOT EXISTS idx_videos_status ON videos(status);
CREATE INDEX IF NOT EXISTS idx_comments_video ON comments(video_id);
`

// PostgresStore backs shared deployments where several server instances
// point at one database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and ensures the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT video_id, channel_id, channel_name, title, description, published_at,
		       duration_seconds, view_count, like_count, comment_count,
		       transcript_text, transcript_lang, transcript_length,
		       summary, status, collected_at, created_at, updated_at
		FROM videos WHERE video_id = $1`, videoID)
	var v Video
	err := row.Scan(&v.VideoID, &v.ChannelID, &v.ChannelName, &v.Title, &v.Description, &v.PublishedAt,
		&v.DurationSeconds, &v.ViewCount, &v.LikeCount, &v.CommentCount,
		&v.TranscriptText, &v.TranscriptLang, &v.TranscriptLength,
		&v.Summary, &v.Status, &v.CollectedAt, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get video: %w", err)
	}
	return &v, nil
}

func (s *PostgresStore) UpsertVideo(ctx context.Context, in Video) error {
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
	_, err = s.pool.Exec(ctx, `
		INSERT INTO videos (video_id, channel_id, channel_name, title, description, published_at,
			duration_seconds, view_count, like_count, comment_count,
			transcript_text, transcript_lang, transcript_length,
			summary, status, collected_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			channel_name = EXCLUDED.channel_name,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_at = EXCLUDED.published_at,
			duration_seconds = EXCLUDED.duration_seconds,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count,
			transcript_text = EXCLUDED.transcript_text,
			transcript_lang = EXCLUDED.transcript_lang,
			transcript_length = EXCLUDED.transcript_length,
			summary = EXCLUDED.summary,
			status = EXCLUDED.status,
			collected_at = EXCLUDED.collected_at,
			updated_at = EXCLUDED.updated_at`,
		v.VideoID, v.ChannelID, v.ChannelName, v.Title, v.Description, v.PublishedAt,
		v.DurationSeconds, v.ViewCount, v.LikeCount, v.CommentCount,
		v.TranscriptText, v.TranscriptLang, v.TranscriptLength,
		v.Summary, v.Status, v.CollectedAt, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: upsert video: %w", err)
	}
	return nil
}

func (s *PostgresStore) SearchTranscripts(ctx context.Context, query string, limit int) ([]TranscriptHit, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx, `
		SELECT video_id, title, channel_name, published_at, transcript_text
		FROM videos
		WHERE transcript_text ILIKE $1
		ORDER BY published_at DESC
		LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("store: search transcripts: %w", err)
	}
	defer rows.Close()

	var hits []TranscriptHit
	for rows.Next() {
		var h TranscriptHit
		var text string
		if err := rows.Scan(&h.VideoID, &h.Title, &h.ChannelName, &h.PublishedAt, &text); err != nil {
			return nil, err
		}
		h.Snippet = ExtractSnippet(text, query)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (s *PostgresStore) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT channel_id, channel_name, channel_url, enabled, last_checked_at, created_at, updated_at
		FROM channels WHERE channel_id = $1`, channelID)
	var c Channel
	err := row.Scan(&c.ChannelID, &c.ChannelName, &c.ChannelURL, &c.Enabled, &c.LastCheckedAt, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get channel: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) UpsertChannel(ctx context.Context, in Channel) error {
	if in.ChannelID == "" {
		return errors.New("store: channel_id required")
	}
	ts := now()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO channels (channel_id, channel_name, channel_url, enabled, last_checked_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (channel_id) DO UPDATE SET
			channel_name = EXCLUDED.channel_name,
			channel_url = CASE WHEN EXCLUDED.channel_url != '' THEN EXCLUDED.channel_url ELSE channels.channel_url END,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at`,
		in.ChannelID, in.ChannelName, in.ChannelURL, in.Enabled, in.LastCheckedAt, ts, ts)
	if err != nil {
		return fmt.Errorf("store: upsert channel: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListChannels(ctx context.Context) ([]Channel, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT channel_id, channel_name, channel_url, enabled, last_checked_at, created_at, updated_at
		FROM channels WHERE enabled ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list channels: %w", err)
	}
	defer rows.Close()

	var channels []Channel
	for rows.Next() {
		var c Channel
		if err := rows.Scan(&c.ChannelID, &c.ChannelName, &c.ChannelURL, &c.Enabled, &c.LastCheckedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

func (s *PostgresStore) MarkChannelChecked(ctx context.Context, channelID string) error {
	ts := now()
	_, err := s.pool.Exec(ctx,
		`UPDATE channels SET last_checked_at = $1, updated_at = $2 WHERE channel_id = $3`,
		ts, ts, channelID)
	if err != nil {
		return fmt.Errorf("store: mark channel checked: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveComments(ctx context.Context, videoID string, comments []engine.Comment) error {
	ts := now()
	for _, c := range comments {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO comments (video_id, comment_id, author, text, like_count, collected_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (comment_id) DO NOTHING`,
			videoID, c.CommentID, c.Author, c.Text, c.LikeCount, ts)
		if err != nil {
			return fmt.Errorf("store: save comment: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) GetComments(ctx context.Context, videoID string, limit int) ([]StoredComment, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, video_id, comment_id, author, text, like_count, collected_at
		FROM comments WHERE video_id = $1 ORDER BY like_count DESC LIMIT $2`,
		videoID, limit)
	if err != nil {
		return nil, fmt.Errorf("store: get comments: %w", err)
	}
	defer rows.Close()

	var comments []StoredComment
	for rows.Next() {
		var c StoredComment
		if err := rows.Scan(&c.ID, &c.VideoID, &c.CommentID, &c.Author, &c.Text, &c.LikeCount, &c.CollectedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
