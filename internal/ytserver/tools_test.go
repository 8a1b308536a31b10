package ytserver

import (
	"strings"
	"testing"
)

func TestChunkText(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := chunkText(""); len(got) != 0 {
			t.Errorf("expected no chunks, got %d", len(got))
		}
	})

	t.Run("single chunk", func(t *testing.T) {
		chunks := chunkText("short transcript")
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].Index != 0 || chunks[0].CharCount != 16 {
			t.Errorf("chunk = %+v", chunks[0])
		}
	})

	t.Run("splits on rune count", func(t *testing.T) {
		// Multi-byte runes so byte and rune counts diverge.
		text := strings.Repeat("한", chunkChars+500)
		chunks := chunkText(text)
		if len(chunks) != 2 {
			t.Fatalf("expected 2 chunks, got %d", len(chunks))
		}
		if chunks[0].CharCount != chunkChars {
			t.Errorf("chunk 0 CharCount = %d", chunks[0].CharCount)
		}
		if chunks[1].CharCount != 500 {
			t.Errorf("chunk 1 CharCount = %d", chunks[1].CharCount)
		}
		if chunks[1].Index != 1 {
			t.Errorf("chunk 1 Index = %d", chunks[1].Index)
		}
		if chunks[0].Text+chunks[1].Text != text {
			t.Error("chunks do not reassemble the input")
		}
	})
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"bare id", "PLabc123DEF", "PLabc123DEF"},
		{"playlist url", "https://www.youtube.com/playlist?list=PLabc123DEF", "PLabc123DEF"},
		{"watch url with list", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123DEF", "PLabc123DEF"},
		{"url without list", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", ""},
		{"whitespace trimmed", "  PLabc123DEF  ", "PLabc123DEF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlaylistID(tt.ref); got != tt.want {
				t.Errorf("extractPlaylistID(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestBoolKey(t *testing.T) {
	if boolKey(true) != "1" || boolKey(false) != "0" {
		t.Errorf("boolKey = %q/%q", boolKey(true), boolKey(false))
	}
}
