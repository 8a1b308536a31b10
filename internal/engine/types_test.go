package engine

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTimedSegmentFieldNames(t *testing.T) {
	out, err := json.Marshal(TimedSegment{Start: 1.5, Dur: 2.5, Text: "cue"})
	if err != nil {
		t.Fatal(err)
	}
	// Downstream consumers key on start/duration/text.
	for _, key := range []string{`"start":`, `"duration":`, `"text":`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("marshaled segment missing %s: %s", key, out)
		}
	}
}
