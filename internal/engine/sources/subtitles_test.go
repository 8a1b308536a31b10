package sources

import (
	"testing"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

func TestParseVTT(t *testing.T) {
	content := "WEBVTT\n" +
		"Kind: captions\n" +
		"Language: en\n" +
		"\n" +
		"00:00:01.000 --> 00:00:03.500 align:start position:0%\n" +
		"Hello world\n" +
		"\n" +
		"00:00:03.500 --> 00:00:06.000\n" +
		"Hello world\n" +
		"Second line\n"

	segs := ParseVTT(content)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Start != 1.0 || segs[0].Dur != 2.5 {
		t.Errorf("segment 0 timing = %v/%v", segs[0].Start, segs[0].Dur)
	}
	if segs[0].Text != "Hello world" {
		t.Errorf("segment 0 text = %q", segs[0].Text)
	}
	// Rolling captions repeat the previous cue's line; it must not show
	// up twice.
	if segs[1].Text != "Second line" {
		t.Errorf("segment 1 text = %q", segs[1].Text)
	}
}

func TestParseVTTStripsInlineTags(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:02.000\n" +
		"Hel<00:00:01.200><c>lo</c> there\n"

	segs := ParseVTT(content)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "Hello there" {
		t.Errorf("text = %q", segs[0].Text)
	}
}

func TestParseVTTGarbage(t *testing.T) {
	if segs := ParseVTT("not a subtitle file at all"); len(segs) != 0 {
		t.Errorf("expected no segments, got %+v", segs)
	}
	if segs := ParseVTT(""); len(segs) != 0 {
		t.Errorf("expected no segments for empty input, got %+v", segs)
	}
}

func TestParseSRT(t *testing.T) {
	content := "1\r\n" +
		"00:00:00,000 --> 00:00:02,000\r\n" +
		"First caption\r\n" +
		"\r\n" +
		"2\r\n" +
		"00:00:02,000 --> 00:00:04,500\r\n" +
		"First caption\r\n" +
		"Second caption\r\n"

	segs := ParseSRT(content)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Start != 0 || segs[0].Dur != 2.0 {
		t.Errorf("segment 0 timing = %v/%v", segs[0].Start, segs[0].Dur)
	}
	if segs[0].Text != "First caption" {
		t.Errorf("segment 0 text = %q", segs[0].Text)
	}
	if segs[1].Start != 2.0 || segs[1].Dur != 2.5 {
		t.Errorf("segment 1 timing = %v/%v", segs[1].Start, segs[1].Dur)
	}
	if segs[1].Text != "Second caption" {
		t.Errorf("segment 1 text = %q", segs[1].Text)
	}
}

func TestParseSRTWithoutIndexLine(t *testing.T) {
	content := "00:00:05,000 --> 00:00:06,500\nHello\n"
	segs := ParseSRT(content)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %+v", len(segs), segs)
	}
	if segs[0].Start != 5.0 || segs[0].Dur != 1.5 {
		t.Errorf("timing = %v/%v", segs[0].Start, segs[0].Dur)
	}
	if segs[0].Text != "Hello" {
		t.Errorf("text = %q", segs[0].Text)
	}
}

func TestParseCueTiming(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		sep   string
		start float64
		dur   float64
		ok    bool
	}{
		{"vtt full", "00:01:02.500 --> 00:01:05.000", ".", 62.5, 2.5, true},
		{"vtt with settings", "00:00:01.000 --> 00:00:02.000 align:start", ".", 1, 1, true},
		{"mm:ss form", "01:02.000 --> 01:03.500", ".", 62, 1.5, true},
		{"srt comma", "00:00:01,500 --> 00:00:03,000", ",", 1.5, 1.5, true},
		{"end before start", "00:00:05.000 --> 00:00:01.000", ".", 0, 0, false},
		{"no arrow", "00:00:01.000 00:00:02.000", ".", 0, 0, false},
		{"garbage", "hello --> world", ".", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, dur, ok := parseCueTiming(tt.line, tt.sep)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (start != tt.start || dur != tt.dur) {
				t.Errorf("got %v/%v, want %v/%v", start, dur, tt.start, tt.dur)
			}
		})
	}
}

func TestStripCueTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"Hel<00:00:01.200><c>lo</c>", "Hello"},
		{"<v Speaker>quoted line", "quoted line"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripCueTags(tt.in); got != tt.want {
			t.Errorf("stripCueTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinSegments(t *testing.T) {
	segs := []engine.TimedSegment{
		{Text: "one"},
		{Text: ""},
		{Text: "two"},
	}
	if got := JoinSegments(segs); got != "one two" {
		t.Errorf("JoinSegments = %q", got)
	}
	if got := JoinSegments(nil); got != "" {
		t.Errorf("JoinSegments(nil) = %q", got)
	}
}
