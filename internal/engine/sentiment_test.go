package engine

import (
	"math"
	"testing"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"english positive", "This video is great, thanks for the breakdown!", "positive"},
		{"english negative", "Worst take ever, total waste of time", "negative"},
		{"korean positive", "정말 유익하고 최고입니다", "positive"},
		{"korean negative", "완전 실망했어요 시간낭비", "negative"},
		{"neutral", "The video covers quarterly results.", "neutral"},
		{"emoji positive", "🔥🔥 nice breakdown 🔥🔥", "positive"},
		{"emoji negative", "👎👎 nope 👎👎", "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeSentiment(tt.text); got != tt.want {
				t.Errorf("AnalyzeSentiment(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeSentimentNegation(t *testing.T) {
	if got := AnalyzeSentiment("not good at explaining anything"); got != "negative" {
		t.Errorf("negated positive = %q, want negative", got)
	}
	if got := AnalyzeSentiment("안 좋아요 이건"); got != "negative" {
		t.Errorf("negated korean positive = %q, want negative", got)
	}
	// "not worth" embeds its own negator and stays negative.
	if got := AnalyzeSentiment("this was not worth watching"); got != "negative" {
		t.Errorf("embedded-negator keyword = %q, want negative", got)
	}
	// A word merely ending in a negator is not a negation.
	if got := AnalyzeSentiment("the casino good luck segment was fun"); got != "positive" {
		t.Errorf("false negator suffix = %q, want positive", got)
	}
	if got := AnalyzeSentiment("불안 좋아요 최고네요"); got != "positive" {
		t.Errorf("korean false negator suffix = %q, want positive", got)
	}
}

func TestIsNoiseComment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"too short", "wow", true},
		{"emoji only", "😂😂😂 😂😂😂", true},
		{"repeated run", "wooooooow nice", true},
		{"subscribe begging", "Please subscribe to my channel", true},
		{"korean sub begging", "제 채널 구독 부탁드려요", true},
		{"real comment", "The part explaining margins was clear", false},
		{"korean real comment", "마진 설명 부분이 명확해서 이해하기 쉬웠습니다", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNoiseComment(tt.text); got != tt.want {
				t.Errorf("IsNoiseComment(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSummarizeCommentsEmpty(t *testing.T) {
	got := SummarizeComments(nil, 5)
	if got.Count != 0 {
		t.Errorf("count = %d, want 0", got.Count)
	}
	if got.TopComments == nil || got.TopKeywords == nil || got.SentimentRatio == nil {
		t.Error("empty summary fields must be non-nil")
	}
}

func TestSummarizeComments(t *testing.T) {
	comments := []Comment{
		{Author: "a", Text: "margin growth looks strong", LikeCount: 3, Sentiment: "positive"},
		{Author: "b", Text: "margin numbers seem inflated", LikeCount: 10, Sentiment: "negative"},
		{Author: "c", Text: "margin detail was thorough", LikeCount: 7, Sentiment: "positive"},
	}
	got := SummarizeComments(comments, 2)

	if got.Count != 3 {
		t.Errorf("count = %d, want 3", got.Count)
	}
	if math.Abs(got.SentimentRatio["positive"]-0.667) > 0.001 {
		t.Errorf("positive ratio = %v", got.SentimentRatio["positive"])
	}
	if math.Abs(got.SentimentRatio["negative"]-0.333) > 0.001 {
		t.Errorf("negative ratio = %v", got.SentimentRatio["negative"])
	}

	if len(got.TopComments) != 2 {
		t.Fatalf("top comments = %d, want 2", len(got.TopComments))
	}
	if got.TopComments[0].Author != "b" || got.TopComments[0].Likes != 10 {
		t.Errorf("top comment = %+v", got.TopComments[0])
	}
	if got.TopComments[1].Author != "c" {
		t.Errorf("second comment = %+v", got.TopComments[1])
	}

	if len(got.TopKeywords) == 0 || got.TopKeywords[0].Word != "margin" {
		t.Errorf("top keywords = %v", got.TopKeywords)
	}
}
