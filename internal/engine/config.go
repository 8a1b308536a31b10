package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	LLMAPIKey             string
	LLMAPIBase            string
	LLMModel              string
	LLMTemperature        float64
	LLMMaxTokens          int
	YtDlpPath             string
	TranscriptLangs       []string // preference order, e.g. ["ko", "en"]
	MaxComments           int
	MaxContentChars       int
	FetchTimeout          time.Duration
	CacheMaxEntries       int
	CacheCleanupInterval  time.Duration
	HTTPClient            *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.LLMModel == "" {
		c.LLMModel = "gpt-4o-mini"
	}
	if c.YtDlpPath == "" {
		c.YtDlpPath = "yt-dlp"
	}
	if len(c.TranscriptLangs) == 0 {
		c.TranscriptLangs = []string{"ko", "en"}
	}
	if c.MaxComments <= 0 {
		c.MaxComments = 30
	}
	cfg = c
	Cfg = &cfg
}
