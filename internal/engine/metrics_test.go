package engine

import (
	"strings"
	"testing"
)

func TestMetricsCounters(t *testing.T) {
	before := GetMetrics()
	IncrTranscriptRequests()
	IncrSegmentations()
	after := GetMetrics()

	if after["transcript_requests"] != before["transcript_requests"]+1 {
		t.Errorf("transcript_requests = %d, want %d", after["transcript_requests"], before["transcript_requests"]+1)
	}
	if after["segmentations"] != before["segmentations"]+1 {
		t.Errorf("segmentations = %d, want %d", after["segmentations"], before["segmentations"]+1)
	}
}

func TestFormatMetrics(t *testing.T) {
	out := FormatMetrics()
	for _, key := range []string{"transcript_requests", "cache_hits", "cache_misses", "reports_generated"} {
		if !strings.Contains(out, key) {
			t.Errorf("FormatMetrics missing %q:\n%s", key, out)
		}
	}
}
