package engine

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"korean music tag", "[음악] 안녕하세요 여러분", "안녕하세요 여러분"},
		{"tag word survives in prose", "[음악] 오늘의 주제는 음악 산업입니다", "오늘의 주제는 음악 산업입니다"},
		{"english tags", "[Music] hello [Applause] world", "hello world"},
		{"music symbols", "♪♪ lyrics go here ♫", "lyrics go here"},
		{"bracket placeholder", "before [__] after", "before after"},
		{"empty brackets", "before [ ] after", "before after"},
		{"timestamp", "intro 1:23 starts", "intro starts"},
		{"long timestamp", "see 12:34:56 here", "see here"},
		{"whitespace collapse", "too   many\n\nspaces", "too many spaces"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	in := "[음악] 오늘은 시장 전망을 말씀드립니다 [박수] 감사합니다"
	once := Clean(in)
	twice := Clean(once)
	if once != twice {
		t.Errorf("Clean not idempotent: %q != %q", once, twice)
	}
}

func TestCleanCollapsesRepeatedSpans(t *testing.T) {
	span := "the quick brown fox jumps over the lazy dog"
	in := span + " " + span
	got := Clean(in)
	if got != span {
		t.Errorf("repeated span not collapsed: got %q", got)
	}
}

func TestCleanKeepsShortRepeats(t *testing.T) {
	// Short repeats are legitimate speech ("very very good").
	in := "it was very very good indeed"
	got := Clean(in)
	if !strings.Contains(got, "very very") {
		t.Errorf("short repeat should survive: got %q", got)
	}
}
