package engine

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
)

// Comment is one viewer comment with its classified sentiment.
type Comment struct {
	CommentID string `json:"comment_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int    `json:"like_count"`
	Sentiment string `json:"sentiment"`
}

var positiveKeywords = []string{
	// Korean
	"좋아요", "감사", "최고", "대박", "잘했", "응원", "축하", "멋지", "훌륭", "사랑",
	"기대", "재밌", "유익", "도움", "감동", "행복", "좋다", "좋은", "좋아",
	"존경", "배움", "인사이트", "완벽", "명강의", "갓", "레전드", "꿀팁",
	"알차", "정리", "깔끔", "핵심", "추천", "구독", "감탄", "천재", "프로",
	// English
	"love", "great", "amazing", "thanks", "thank", "awesome", "excellent",
	"wonderful", "fantastic", "good", "best", "perfect", "helpful", "brilliant",
	"incredible", "outstanding", "insightful", "informative", "well-explained",
	"mind-blowing", "game-changer", "10/10", "superb", "impressive",
	"fire", "dope", "goat", "clutch", "lit", "solid", "clean",
	"underrated", "legendary", "chef's kiss", "top-notch", "phenomenal",
	"eye-opening", "life-changing", "well done", "nailed it", "on point",
	"exactly what i needed", "so good", "really good", "very helpful",
}

var negativeKeywords = []string{
	// Korean
	"별로", "싫어", "최악", "실망", "짜증", "화나", "나쁜", "나쁘", "못했", "안됨",
	"쓰레기", "거짓", "사기", "불만", "지루", "재미없",
	"노잼", "쓸모없", "시간낭비", "낚시", "구라", "편향", "광고", "돈낭비",
	"아쉽", "부족", "별점", "후회", "비추", "폭망",
	// English
	"hate", "terrible", "worst", "disappointed", "boring", "bad", "awful",
	"horrible", "trash", "garbage", "waste", "dislike", "annoying", "stupid",
	"useless", "misleading", "clickbait", "scam", "overrated", "cringe",
	"painful to watch", "waste of time", "don't bother", "thumbs down",
	"not worth", "poorly explained", "confusing", "wrong", "inaccurate",
	"outdated", "low quality", "meh", "mid", "skip this",
}

var positiveEmoji = runeSet("😂❤🔥👍🎉😊🥰💪✨👏🙌💯😍🤩🥳💖💕😎🤗💡🏆⭐")
var negativeEmoji = runeSet("😡😤😢😭👎💩🤮😠🙄😒💔🤬😾👿🚫❌😞😩😫")

// Negators that invert a sentiment keyword when they immediately precede it.
var negators = []string{"not", "never", "no", "don't", "doesn't", "isn't", "wasn't", "안", "못", "전혀"}

var (
	urlRE     = regexp.MustCompile(`(?i)https?://\S+`)
	subSpamRE = regexp.MustCompile(`(?i)(구독|좋아요\s*눌러|subscribe|sub\s*4\s*sub|check\s*my\s*channel)`)
)

func runeSet(s string) map[rune]struct{} {
	m := make(map[rune]struct{})
	for _, r := range s {
		if r == '️' {
			continue
		}
		m[r] = struct{}{}
	}
	return m
}

// AnalyzeSentiment classifies text as "positive", "negative" or "neutral"
// using keyword and emoji signals. Each emoji counts half a keyword. A
// keyword directly preceded by a negator ("not good", "안 좋아요") scores
// for the opposite polarity.
func AnalyzeSentiment(text string) string {
	lower := strings.ToLower(text)

	var pos, neg float64
	for _, kw := range positiveKeywords {
		switch matchPolarity(lower, kw) {
		case 1:
			pos++
		case -1:
			neg++
		}
	}
	for _, kw := range negativeKeywords {
		switch matchPolarity(lower, kw) {
		case 1:
			neg++
		case -1:
			pos++
		}
	}

	for _, r := range text {
		if _, ok := positiveEmoji[r]; ok {
			pos += 0.5
		}
		if _, ok := negativeEmoji[r]; ok {
			neg += 0.5
		}
	}

	switch {
	case pos > neg && pos >= 0.5:
		return "positive"
	case neg > pos && neg >= 0.5:
		return "negative"
	default:
		return "neutral"
	}
}

// matchPolarity returns 0 when kw is absent, 1 for a plain match and -1
// when the first occurrence is negated.
func matchPolarity(lower, kw string) int {
	i := strings.Index(lower, kw)
	if i < 0 {
		return 0
	}
	before := strings.TrimRight(lower[:i], " \t")
	for _, n := range negators {
		if endsWithWord(before, n) {
			// Keywords that embed their own negation ("not worth",
			// "don't bother") stay as written.
			if !strings.Contains(kw, n) {
				return -1
			}
		}
	}
	return 1
}

// endsWithWord reports whether s ends with w as a whole word, so "casino"
// does not count as ending in the negator "no".
func endsWithWord(s, w string) bool {
	if !strings.HasSuffix(s, w) {
		return false
	}
	rest := s[:len(s)-len(w)]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(rest)
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// IsNoiseComment reports whether a comment is too short, emoji-only,
// repeated-character spam, link spam or subscribe begging.
func IsNoiseComment(text string) bool {
	stripped := strings.TrimSpace(text)
	if utf8.RuneCountInString(stripped) < 5 {
		return true
	}
	if isEmojiOnly(stripped) {
		return true
	}
	if hasRepeatedRun(stripped, 5) {
		return true
	}
	if len(urlRE.FindAllString(stripped, -1)) > 2 {
		return true
	}
	return subSpamRE.MatchString(stripped)
}

func isEmojiOnly(s string) bool {
	rest := gomoji.RemoveEmojis(s)
	rest = strings.Map(func(r rune) rune {
		if r == '️' || r == '‍' || r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, rest)
	return rest == ""
}

func hasRepeatedRun(s string, n int) bool {
	var last rune
	run := 0
	for _, r := range s {
		if r == last {
			run++
			if run >= n {
				return true
			}
		} else {
			last = r
			run = 1
		}
	}
	return false
}

// KeywordCount is one entry of a comment keyword histogram.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopComment is a like-ranked comment in a CommentSummary.
type TopComment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	Likes     int    `json:"likes"`
	Sentiment string `json:"sentiment"`
}

// CommentSummary aggregates sentiment ratios, like-ranked highlights and
// frequent keywords over a comment set.
type CommentSummary struct {
	Count          int                `json:"count"`
	SentimentRatio map[string]float64 `json:"sentiment_ratio"`
	TopComments    []TopComment       `json:"top_comments"`
	TopKeywords    []KeywordCount     `json:"top_keywords"`
}

var commentWordRE = regexp.MustCompile(`[\w가-힣]{2,}`)

var commentStop = map[string]struct{}{
	"the": {}, "is": {}, "it": {}, "to": {}, "and": {}, "of": {},
	"in": {}, "that": {}, "this": {}, "for": {}, "are": {}, "was": {},
}

// SummarizeComments builds a compact digest of a comment set: sentiment
// ratio, topN most-liked comments and the 15 most frequent keywords.
func SummarizeComments(comments []Comment, topN int) CommentSummary {
	if len(comments) == 0 {
		return CommentSummary{
			SentimentRatio: map[string]float64{},
			TopComments:    []TopComment{},
			TopKeywords:    []KeywordCount{},
		}
	}
	if topN <= 0 {
		topN = 5
	}

	counts := map[string]int{}
	for i := range comments {
		s := comments[i].Sentiment
		if s == "" {
			s = AnalyzeSentiment(comments[i].Text)
		}
		counts[s]++
	}
	total := float64(len(comments))
	ratio := map[string]float64{
		"positive": round3(float64(counts["positive"]) / total),
		"negative": round3(float64(counts["negative"]) / total),
		"neutral":  round3(float64(counts["neutral"]) / total),
	}

	byLikes := make([]Comment, len(comments))
	copy(byLikes, comments)
	sort.SliceStable(byLikes, func(a, b int) bool {
		return byLikes[a].LikeCount > byLikes[b].LikeCount
	})
	if topN > len(byLikes) {
		topN = len(byLikes)
	}
	top := make([]TopComment, topN)
	for i := 0; i < topN; i++ {
		c := byLikes[i]
		sent := c.Sentiment
		if sent == "" {
			sent = "neutral"
		}
		top[i] = TopComment{
			Author:    c.Author,
			Text:      Truncate(c.Text, 200),
			Likes:     c.LikeCount,
			Sentiment: sent,
		}
	}

	words := map[string]int{}
	for i := range comments {
		for _, w := range commentWordRE.FindAllString(comments[i].Text, -1) {
			w = strings.ToLower(w)
			if _, stop := commentStop[w]; !stop {
				words[w]++
			}
		}
	}
	type wc struct {
		word  string
		count int
	}
	ranked := make([]wc, 0, len(words))
	for w, c := range words {
		ranked = append(ranked, wc{w, c})
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].count != ranked[b].count {
			return ranked[a].count > ranked[b].count
		}
		return ranked[a].word < ranked[b].word
	})
	if len(ranked) > 15 {
		ranked = ranked[:15]
	}
	keywords := make([]KeywordCount, len(ranked))
	for i, r := range ranked {
		keywords[i] = KeywordCount{Word: r.word, Count: r.count}
	}

	return CommentSummary{
		Count:          len(comments),
		SentimentRatio: ratio,
		TopComments:    top,
		TopKeywords:    keywords,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
