// mcp-youtube-intelligence — YouTube content intelligence MCP server.
//
// Exposes ten MCP tools for collecting and analyzing YouTube videos:
// transcripts, summaries, topic segments, entities, comments with sentiment,
// channel monitoring, search, playlists, and full markdown reports.
// Runs on stdio by default, or as a streamable HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/store"
	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/ytserver"
)

var version = "dev"

type config struct {
	YouTubeAPIKey         string        `env:"YOUTUBE_API_KEY"`
	YouTubeAPIKeyFallback string        `env:"YOUTUBE_API_KEY_FALLBACK"`
	LLMAPIKey             string        `env:"LLM_API_KEY"`
	LLMAPIBase            string        `env:"LLM_API_BASE"`
	LLMModel              string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTemperature        float64       `env:"LLM_TEMPERATURE" envDefault:"0.3"`
	LLMMaxTokens          int           `env:"LLM_MAX_TOKENS" envDefault:"500"`
	YtDlpPath             string        `env:"YTDLP_PATH" envDefault:"yt-dlp"`
	TranscriptLangs       []string      `env:"TRANSCRIPT_LANGS" envDefault:"ko,en"`
	MaxComments           int           `env:"MAX_COMMENTS" envDefault:"30"`
	MaxContentChars       int           `env:"MAX_CONTENT_CHARS" envDefault:"30000"`
	FetchTimeout          time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	StoreDSN    string `env:"STORE_DSN" envDefault:"data/youtube.db"`

	RedisURL             string        `env:"REDIS_URL"`
	CacheTTL             time.Duration `env:"CACHE_TTL" envDefault:"6h"`
	CacheMaxEntries      int           `env:"CACHE_MAX_ENTRIES" envDefault:"1000"`
	CacheCleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"5m"`

	HTTPAddr string `env:"HTTP_ADDR"`
}

func main() {
	_ = godotenv.Load()

	var c config
	if err := env.ParseWithOptions(&c, env.Options{Prefix: "MYI_"}); err != nil {
		slog.Error("config parse failed", slog.Any("error", err))
		os.Exit(1)
	}

	engine.Init(engine.Config{
		YouTubeAPIKey:         c.YouTubeAPIKey,
		YouTubeAPIKeyFallback: c.YouTubeAPIKeyFallback,
		LLMAPIKey:             c.LLMAPIKey,
		LLMAPIBase:            c.LLMAPIBase,
		LLMModel:              c.LLMModel,
		LLMTemperature:        c.LLMTemperature,
		LLMMaxTokens:          c.LLMMaxTokens,
		YtDlpPath:             c.YtDlpPath,
		TranscriptLangs:       c.TranscriptLangs,
		MaxComments:           c.MaxComments,
		MaxContentChars:       c.MaxContentChars,
		FetchTimeout:          c.FetchTimeout,
		CacheMaxEntries:       c.CacheMaxEntries,
		CacheCleanupInterval:  c.CacheCleanupInterval,
		HTTPClient: &http.Client{
			Timeout: c.FetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	})
	engine.InitCache(c.RedisURL, c.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)

	ctx := context.Background()

	st, err := store.Open(ctx, c.StoreDriver, c.StoreDSN)
	if err != nil {
		slog.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer st.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mcp-youtube-intelligence",
		Version: version,
	}, nil)
	ytserver.RegisterTools(server, st)

	if c.HTTPAddr != "" {
		runHTTP(server, c.HTTPAddr)
		return
	}

	slog.Info("starting mcp-youtube-intelligence on stdio", slog.String("version", version))
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func runHTTP(server *mcp.Server, addr string) {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(engine.FormatMetrics()))
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	slog.Info("starting mcp-youtube-intelligence on http",
		slog.String("addr", addr),
		slog.String("version", version),
	)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 600 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
