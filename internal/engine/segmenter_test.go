package engine

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func koPad(prefix string, n int) string {
	var b strings.Builder
	b.WriteString(prefix)
	for b.Len() == 0 || utf8.RuneCountInString(b.String()) < n {
		b.WriteString(" 시장 상황과 업계 동향을 자세히 살펴보겠습니다.")
	}
	return b.String()
}

func TestSegmentTopicsEmpty(t *testing.T) {
	if got := SegmentTopics(""); len(got) != 0 {
		t.Errorf("expected no segments, got %v", got)
	}
	if got := SegmentTopics("   "); len(got) != 0 {
		t.Errorf("expected no segments, got %v", got)
	}
}

func TestSegmentTopicsShortTextSingleSegment(t *testing.T) {
	text := "짧은 내용입니다. 마커가 없습니다."
	got := SegmentTopics(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(got))
	}
	if got[0].Segment != 0 {
		t.Errorf("segment index = %d, want 0", got[0].Segment)
	}
	if got[0].CharCount != utf8.RuneCountInString(got[0].Text) {
		t.Errorf("char count %d != rune length %d", got[0].CharCount, utf8.RuneCountInString(got[0].Text))
	}
}

func TestSegmentTopicsMarkerSplit(t *testing.T) {
	part1 := koPad("첫 번째 주제는 인공지능입니다.", 150)
	part2 := koPad("다음 주제는 반도체입니다.", 150)
	text := part1 + " " + part2

	got := SegmentTopics(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(got), got)
	}
	if !strings.HasPrefix(got[0].Text, "첫 번째 주제는") {
		t.Errorf("segment 0 starts with %q", Truncate(got[0].Text, 20))
	}
	if !strings.HasPrefix(got[1].Text, "다음 주제는") {
		t.Errorf("segment 1 starts with %q", Truncate(got[1].Text, 20))
	}
	for i, s := range got {
		if s.Segment != i {
			t.Errorf("segment %d has index %d", i, s.Segment)
		}
		if s.CharCount != utf8.RuneCountInString(s.Text) {
			t.Errorf("segment %d char count mismatch", i)
		}
		if s.Topic == "" {
			t.Errorf("segment %d has no topic keywords", i)
		}
	}
}

func TestSegmentTopicsMidSentenceMarkerIgnored(t *testing.T) {
	// "다음 주제" not at a sentence start must not split.
	text := "우리는 지금 다음 주제 이야기를 미리 준비하고 있습니다."
	got := SegmentTopics(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d: %+v", len(got), got)
	}

	text = "The next thing in the code is a function call. We also handle errors."
	got = SegmentTopics(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 segment for mid-sentence phrase, got %d: %+v", len(got), got)
	}
}

func TestSegmentTopicsShortMarkerSegmentsSurvive(t *testing.T) {
	// Explicit transitions split even when the speaker keeps a topic brief.
	text := "첫 번째 주제는 AI입니다. 인공지능은 유용합니다. 다음 주제는 반도체입니다. 반도체 시장이 성장합니다."
	got := SegmentTopics(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(got), got)
	}
	if !strings.HasPrefix(got[1].Text, "다음 주제는 반도체") {
		t.Errorf("segment 1 starts with %q", Truncate(got[1].Text, 20))
	}
}

func TestSegmentTopicsPreambleBecomesFirstSegment(t *testing.T) {
	text := "오늘 이야기를 시작하겠습니다. 자 다음 주제는 반도체입니다. 반도체 시장 이야기. 자 마지막 주제는 금리입니다. 금리 이야기."
	got := SegmentTopics(text)
	if len(got) != 3 {
		t.Fatalf("expected preamble plus 2 marker segments, got %d: %+v", len(got), got)
	}
	if !strings.HasPrefix(got[0].Text, "오늘 이야기를") {
		t.Errorf("segment 0 starts with %q", Truncate(got[0].Text, 20))
	}
}

func TestSegmentTopicsEnglishMarkers(t *testing.T) {
	pad := func(prefix string) string {
		var b strings.Builder
		b.WriteString(prefix)
		for utf8.RuneCountInString(b.String()) < 150 {
			b.WriteString(" We review market structure and industry direction carefully today.")
		}
		return b.String()
	}
	text := pad("First topic is inflation.") + " " + pad("Moving on to semiconductors.")
	got := SegmentTopics(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	if !strings.HasPrefix(got[1].Text, "Moving on to") {
		t.Errorf("segment 1 starts with %q", Truncate(got[1].Text, 30))
	}
}

func TestSegmentTopicsFallbackSplitsLongText(t *testing.T) {
	// No markers, well over the per-segment word target.
	var b strings.Builder
	words := []string{"market", "economy", "inflation", "growth", "policy", "trade", "earnings", "outlook"}
	for i := 0; i < 150; i++ {
		w := words[i%len(words)]
		b.WriteString("The " + w + " discussion continues with fresh numbers and careful analysis today. ")
	}
	got := SegmentTopics(b.String())
	if len(got) < 2 {
		t.Fatalf("expected fallback split into multiple segments, got %d", len(got))
	}
	for i, s := range got {
		if s.Segment != i {
			t.Errorf("segment %d has index %d", i, s.Segment)
		}
		if s.CharCount < minSegmentChars && i > 0 {
			t.Errorf("segment %d below minimum size: %d", i, s.CharCount)
		}
	}
}
