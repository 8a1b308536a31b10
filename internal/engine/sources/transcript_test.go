package sources

import (
	"encoding/json"
	"testing"
)

func TestExtractTranscriptToken(t *testing.T) {
	data := []byte(`{"engagementPanels":[{"getTranscriptEndpoint":{"params":"CgtkUXc0dzlXZ1hjURIA%3D%3D"}}]}`)
	token, err := extractTranscriptToken(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The params value is URL-encoded in the page JSON.
	if token != "CgtkUXc0dzlXZ1hjURIA==" {
		t.Errorf("token = %q", token)
	}

	if _, err := extractTranscriptToken([]byte(`{"no":"panels"}`)); err == nil {
		t.Error("expected error when endpoint is absent")
	}
}

func TestParseTranscriptSegments(t *testing.T) {
	raw := `{"actions":[{"updateEngagementPanelAction":{"content":{"transcriptRenderer":{
		"content":{"transcriptSearchPanelRenderer":{"body":{"transcriptSegmentListRenderer":{
		"initialSegments":[
			{"transcriptSegmentRenderer":{"snippet":{"runs":[{"text":"hello"}]}}},
			{"transcriptSegmentRenderer":{"snippet":{"runs":[{"text":"wide"},{"text":"world"}]}}},
			{}
		]}}}}}}}}]}`
	var resp ytGetTranscriptResp
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	if got := parseTranscriptSegments(resp); got != "hello wide world" {
		t.Errorf("parseTranscriptSegments = %q", got)
	}
}

func TestNeedsPoToken(t *testing.T) {
	if !needsPoToken("https://www.youtube.com/api/timedtext?v=x&exp=xpe&lang=en") {
		t.Error("exp=xpe track should need a PoToken")
	}
	if needsPoToken("https://www.youtube.com/api/timedtext?v=x&lang=en") {
		t.Error("plain track should not need a PoToken")
	}
}

func TestPickBestTrack(t *testing.T) {
	manualKo := captionTrack{BaseURL: "https://yt/tt?lang=ko", LanguageCode: "ko"}
	asrKo := captionTrack{BaseURL: "https://yt/tt?lang=ko&kind=asr", LanguageCode: "ko", Kind: "asr"}
	manualEn := captionTrack{BaseURL: "https://yt/tt?lang=en", LanguageCode: "en"}
	asrJa := captionTrack{BaseURL: "https://yt/tt?lang=ja&kind=asr", LanguageCode: "ja", Kind: "asr"}
	blocked := captionTrack{BaseURL: "https://yt/tt?lang=ko&exp=xpe", LanguageCode: "ko"}

	t.Run("manual beats asr in same language", func(t *testing.T) {
		got, ok := pickBestTrack([]captionTrack{asrKo, manualKo}, []string{"ko", "en"})
		if !ok || got.BaseURL != manualKo.BaseURL {
			t.Errorf("got %+v ok=%v", got, ok)
		}
	})
	t.Run("asr when no manual in preferred language", func(t *testing.T) {
		got, ok := pickBestTrack([]captionTrack{asrKo, manualEn}, []string{"ko", "en"})
		if !ok || got.BaseURL != asrKo.BaseURL {
			t.Errorf("got %+v ok=%v", got, ok)
		}
	})
	t.Run("english fallback", func(t *testing.T) {
		got, ok := pickBestTrack([]captionTrack{asrJa, manualEn}, []string{"ko"})
		if !ok || got.BaseURL != manualEn.BaseURL {
			t.Errorf("got %+v ok=%v", got, ok)
		}
	})
	t.Run("first usable when nothing matches", func(t *testing.T) {
		got, ok := pickBestTrack([]captionTrack{asrJa}, []string{"ko"})
		if !ok || got.BaseURL != asrJa.BaseURL {
			t.Errorf("got %+v ok=%v", got, ok)
		}
	})
	t.Run("potoken tracks skipped", func(t *testing.T) {
		got, ok := pickBestTrack([]captionTrack{blocked, manualEn}, []string{"ko", "en"})
		if !ok || got.BaseURL != manualEn.BaseURL {
			t.Errorf("got %+v ok=%v", got, ok)
		}
	})
	t.Run("all tracks blocked", func(t *testing.T) {
		if _, ok := pickBestTrack([]captionTrack{blocked}, []string{"ko"}); ok {
			t.Error("expected ok=false when every track needs a PoToken")
		}
	})
}

func TestDetectLang(t *testing.T) {
	if got := DetectLang("안녕하세요 오늘은 시장 상황을 자세히 살펴보겠습니다"); got != "ko" {
		t.Errorf("korean text detected as %q", got)
	}
	if got := DetectLang("This is a plain English sentence written for language detection."); got != "en" {
		t.Errorf("english text detected as %q", got)
	}
}
