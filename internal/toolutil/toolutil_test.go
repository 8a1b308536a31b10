package toolutil

import (
	"slices"
	"testing"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

func TestNormLang(t *testing.T) {
	if got := NormLang(""); got != "all" {
		t.Errorf(`NormLang("") = %q`, got)
	}
	if got := NormLang("ko"); got != "ko" {
		t.Errorf(`NormLang("ko") = %q`, got)
	}
}

func TestPreferredLangs(t *testing.T) {
	orig := engine.Cfg.TranscriptLangs
	engine.Cfg.TranscriptLangs = []string{"ko", "en"}
	t.Cleanup(func() { engine.Cfg.TranscriptLangs = orig })

	tests := []struct {
		name string
		lang string
		want []string
	}{
		{"empty keeps defaults", "", []string{"ko", "en"}},
		{"requested goes first", "ja", []string{"ja", "ko", "en"}},
		{"requested already a default", "en", []string{"en", "ko"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreferredLangs(tt.lang); !slices.Equal(got, tt.want) {
				t.Errorf("PreferredLangs(%q) = %v, want %v", tt.lang, got, tt.want)
			}
		})
	}
}

func TestVideoID(t *testing.T) {
	id, err := VideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil || id != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q, %v", id, err)
	}
	if _, err := VideoID("not a video"); err == nil {
		t.Error("expected error for invalid reference")
	}
}
