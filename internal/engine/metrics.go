package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	SearchRequests     atomic.Int64
	CommentRequests    atomic.Int64
	FeedRequests       atomic.Int64
	PlaylistRequests   atomic.Int64
	YtDlpInvocations   atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	ReportsGenerated   atomic.Int64
	EntityExtractions  atomic.Int64
	Segmentations      atomic.Int64
	Summaries          atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_errors":   metrics.TranscriptErrors.Load(),
		"search_requests":     metrics.SearchRequests.Load(),
		"comment_requests":    metrics.CommentRequests.Load(),
		"feed_requests":       metrics.FeedRequests.Load(),
		"playlist_requests":   metrics.PlaylistRequests.Load(),
		"ytdlp_invocations":   metrics.YtDlpInvocations.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"reports_generated":   metrics.ReportsGenerated.Load(),
		"entity_extractions":  metrics.EntityExtractions.Load(),
		"segmentations":       metrics.Segmentations.Load(),
		"summaries":           metrics.Summaries.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "transcript_errors",
		"search_requests", "comment_requests",
		"feed_requests", "playlist_requests", "ytdlp_invocations",
		"llm_calls", "llm_errors",
		"reports_generated", "entity_extractions", "segmentations", "summaries",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ and server sub-packages.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
func IncrSearchRequests()     { metrics.SearchRequests.Add(1) }
func IncrCommentRequests()    { metrics.CommentRequests.Add(1) }
func IncrFeedRequests()       { metrics.FeedRequests.Add(1) }
func IncrPlaylistRequests()   { metrics.PlaylistRequests.Add(1) }
func IncrYtDlpInvocations()   { metrics.YtDlpInvocations.Add(1) }
func IncrReportsGenerated()   { metrics.ReportsGenerated.Add(1) }
func IncrEntityExtractions()  { metrics.EntityExtractions.Add(1) }
func IncrSegmentations()      { metrics.Segmentations.Add(1) }
func IncrSummaries()          { metrics.Summaries.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
