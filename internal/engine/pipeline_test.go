package engine

import (
	"strings"
	"testing"
)

// Full pipeline over a noisy Korean transcript: clean, segment, extract
// entities, summarize. Mirrors how the MCP tools chain the core steps.
func TestKoreanTranscriptPipeline(t *testing.T) {
	pad1 := " 인공지능 기술이 산업 전반에 빠르게 확산되고 있습니다." +
		" 생성형 모델의 활용 사례가 기업 현장에서 계속 늘어나는 중입니다." +
		" 학습 비용 문제를 해결하려는 연구도 활발하게 진행되고 있습니다."
	pad2 := " 반도체 수요가 데이터센터 투자와 함께 크게 늘어나고 있습니다." +
		" 메모리 가격 반등이 실적 개선으로 이어질 전망입니다." +
		" 파운드리 경쟁 구도 변화도 시장의 큰 관심사입니다."
	raw := "[음악] 첫 번째 주제는 인공지능입니다." + pad1 +
		" 다음 주제는 반도체입니다." + pad2 + " [박수]"

	cleaned := Clean(raw)
	if strings.Contains(cleaned, "[음악]") || strings.Contains(cleaned, "[박수]") {
		t.Fatalf("noise tags survived cleaning: %q", cleaned)
	}

	segments := SegmentTopics(cleaned)
	if len(segments) != 2 {
		t.Fatalf("expected 2 topic segments, got %d: %+v", len(segments), segments)
	}
	if !strings.Contains(segments[0].Text, "인공지능") {
		t.Errorf("segment 0 missing first topic: %q", segments[0].Text)
	}
	if !strings.HasPrefix(segments[1].Text, "다음 주제는 반도체") {
		t.Errorf("segment 1 starts with %q", Truncate(segments[1].Text, 20))
	}

	entities := ExtractEntities(cleaned, nil)
	var haveAI, haveSemi bool
	for _, e := range entities {
		if e.Name == "AI" && e.Type == "technology" {
			haveAI = true
		}
		if e.Name == "Semiconductor" && e.Type == "sector" {
			haveSemi = true
		}
	}
	if !haveAI || !haveSemi {
		t.Errorf("entities missing AI/Semiconductor: %+v", entities)
	}

	summary := Summarize(cleaned, 4, 0)
	if summary == "" {
		t.Fatal("expected non-empty summary")
	}
	if !strings.Contains(summary, "인공지능") && !strings.Contains(summary, "반도체") {
		t.Errorf("summary lost both topics: %q", summary)
	}
}
