package engine

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSentences bounds how many sentences an extractive summary keeps
// when the caller does not say otherwise.
const DefaultMaxSentences = 7

// Phrases that mark a sentence as carrying a conclusion or key point.
var cuePhrases = []string{
	"in summary", "in conclusion", "to summarize", "to conclude",
	"key point", "takeaway", "most important",
	"핵심", "결론", "요약", "정리하면", "중요한", "포인트는",
}

var musicSymbolReplacer = strings.NewReplacer("♪", "", "♫", "")

type scoredSentence struct {
	score float64
	index int
	text  string
}

// Summarize builds an extractive summary: sentences are scored by
// term importance (tf-idf over the sentence set) with position, cue-phrase,
// numeric and length boosts, deduplicated by lexical overlap, then
// reassembled in reading order within the character budget.
//
// maxSentences <= 0 means DefaultMaxSentences. maxChars <= 0 picks an
// adaptive budget that shrinks as the source grows.
func Summarize(text string, maxSentences, maxChars int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	if maxChars <= 0 {
		maxChars = adaptiveBudget(utf8.RuneCountInString(text))
	}

	cleaned := musicSymbolReplacer.Replace(text)
	sentences := SplitSentences(cleaned, 20)
	if len(sentences) == 0 {
		return Truncate(strings.TrimSpace(cleaned), maxChars)
	}

	scored := scoreSentences(sentences)

	order := make([]*scoredSentence, len(scored))
	for i := range scored {
		order[i] = &scored[i]
	}
	sort.SliceStable(order, func(a, b int) bool {
		return order[a].score > order[b].score
	})

	var picked []*scoredSentence
	var pickedTokens [][]string
	for _, cand := range order {
		if len(picked) == maxSentences {
			break
		}
		toks := contentTokens(cand.text)
		dup := false
		for _, prev := range pickedTokens {
			if jaccard(toks, prev) > 0.5 {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		picked = append(picked, cand)
		pickedTokens = append(pickedTokens, toks)
	}

	sort.Slice(picked, func(a, b int) bool {
		return picked[a].index < picked[b].index
	})

	return assemble(picked, maxChars)
}

// adaptiveBudget maps source length to a summary budget: generous for short
// text, increasingly compressed for long transcripts, never under 200 chars.
func adaptiveBudget(srcLen int) int {
	var budget int
	switch {
	case srcLen < 1000:
		budget = srcLen / 2
	case srcLen < 5000:
		budget = srcLen / 5
	case srcLen < 20000:
		budget = srcLen / 10
	default:
		budget = srcLen / 20
	}
	if budget < 200 {
		budget = 200
	}
	return budget
}

func scoreSentences(sentences []string) []scoredSentence {
	// Document frequency across the sentence set.
	df := make(map[string]int)
	tokensPer := make([][]string, len(sentences))
	for i, s := range sentences {
		toks := contentTokens(s)
		tokensPer[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}
	n := float64(len(sentences))

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		toks := tokensPer[i]
		var score float64
		if len(toks) > 0 {
			tf := make(map[string]int, len(toks))
			for _, t := range toks {
				tf[t]++
			}
			for t, c := range tf {
				idf := math.Log(n/(1.0+float64(df[t]))) + 1.0
				score += float64(c) * idf
			}
			score /= float64(len(toks))
		}

		switch i {
		case 0:
			score *= 1.5
		case len(sentences) - 1:
			score *= 1.3
		case 1, len(sentences) - 2:
			score *= 1.1
		}
		if hasCuePhrase(s) {
			score *= 1.6
		}
		if strings.ContainsAny(s, "0123456789") {
			score *= 1.4
		}
		if l := utf8.RuneCountInString(s); l >= 30 && l <= 200 {
			score *= 1.1
		}

		scored[i] = scoredSentence{score: score, index: i, text: s}
	}
	return scored
}

func hasCuePhrase(s string) bool {
	low := strings.ToLower(s)
	for _, cue := range cuePhrases {
		if strings.Contains(low, cue) {
			return true
		}
	}
	return false
}

// assemble joins picked sentences in reading order, stopping before the
// addition that would blow the budget. A lone over-budget first sentence is
// truncated rather than dropped so the summary is never empty.
func assemble(picked []*scoredSentence, maxChars int) string {
	var b strings.Builder
	used := 0
	for _, p := range picked {
		s := p.text
		if !endsWithSentencePunct(s) {
			s += "."
		}
		add := utf8.RuneCountInString(s)
		if used > 0 {
			add++ // joining space
		}
		if used+add > maxChars {
			if used == 0 {
				return Truncate(s, maxChars)
			}
			break
		}
		if used > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		used += add
	}
	return b.String()
}

func endsWithSentencePunct(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return isSentenceEnd(r)
}
