package engine

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Shared text primitives for the analysis pipeline: tokenization, stopword
// filtering, sentence splitting, and the two lexical similarity measures
// (cosine for segmentation, Jaccard for summary dedup).

var (
	// Word-like runs: Latin, Hangul, digits.
	tokenRE = regexp.MustCompile(`[a-zA-Z가-힣\d]+`)
	// Keyword candidates for topic labels: 2+ Hangul or 3+ Latin chars.
	keywordRE = regexp.MustCompile(`[가-힣]{2,}|[a-zA-Z]{3,}`)
)

var stopwords = buildStopwords(
	"the a an is are was were be been being have has had do does did will would "+
		"shall should may might can could of in to for on with at by from as into "+
		"through during before after above below between and but or nor not so yet "+
		"this that these those it its he she they we you i me him her us them my "+
		"his our your their what which who whom how when where why all each every "+
		"both few more most other some such no any if than too very just about also "+
		"then only still even because since while although though until",
	"은 는 이 가 을 를 에 에서 의 와 과 도 로 으로 한 된 하는 있는 없는 그 저 것 수 등 "+
		"좀 잘 더 또 안 못 제 너 나 요 네 거 건 게 데 때 곳 중 다 해 줘 줄 걸 뭐 왜 "+
		"및 만 까지 부터 하다 있다 되다 않다 없다 이다 그리고 하지만 또한 때문에 위해 대한 통해",
)

func buildStopwords(lists ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, l := range lists {
		for _, w := range strings.Fields(l) {
			set[w] = struct{}{}
		}
	}
	return set
}

func isStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// Tokenize lowercases and extracts word-like tokens of length >= 2.
// Stopwords are kept; callers filter where it matters.
func Tokenize(text string) []string {
	raw := tokenRE.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if utf8.RuneCountInString(t) > 1 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// contentTokens returns stopword-filtered tokens.
func contentTokens(text string) []string {
	all := Tokenize(text)
	out := all[:0]
	for _, t := range all {
		if !isStopword(t) {
			out = append(out, t)
		}
	}
	return out
}

// wordBag builds a term-frequency map from keyword-grade tokens.
func wordBag(text string) map[string]int {
	bag := make(map[string]int)
	for _, t := range keywordRE.FindAllString(strings.ToLower(text), -1) {
		if !isStopword(t) {
			bag[t]++
		}
	}
	return bag
}

// cosine computes cosine similarity between two term-frequency maps.
// Zero when either side has no terms.
func cosine(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for k, av := range a {
		na += float64(av) * float64(av)
		if bv, ok := b[k]; ok {
			dot += float64(av) * float64(bv)
		}
	}
	for _, bv := range b {
		nb += float64(bv) * float64(bv)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// jaccard computes set overlap between stopword-filtered token sets.
func jaccard(aTokens, bTokens []string) float64 {
	a := make(map[string]struct{})
	for _, t := range aTokens {
		if !isStopword(t) {
			a[t] = struct{}{}
		}
	}
	b := make(map[string]struct{})
	for _, t := range bTokens {
		if !isStopword(t) {
			b[t] = struct{}{}
		}
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// SplitSentences splits on sentence-ending punctuation (., !, ?, ideographic
// full stop) followed by whitespace, or on newlines. Fragments of minLen runes
// or fewer are dropped.
func SplitSentences(text string, minLen int) []string {
	var parts []string
	var cur strings.Builder
	runes := []rune(text)
	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" && utf8.RuneCountInString(s) > minLen {
			parts = append(parts, s)
		}
		cur.Reset()
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if isSentenceEnd(r) && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			flush()
		}
	}
	flush()
	return parts
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '。'
}

// extractKeywords returns the top-n keyword-grade tokens by frequency.
// Ties break lexicographically so output is deterministic.
func extractKeywords(text string, topN int) []string {
	bag := wordBag(text)
	if len(bag) == 0 {
		return nil
	}
	type wc struct {
		word  string
		count int
	}
	ranked := make([]wc, 0, len(bag))
	for w, c := range bag {
		ranked = append(ranked, wc{w, c})
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0; j-- {
			a, b := ranked[j], ranked[j-1]
			if a.count > b.count || (a.count == b.count && a.word < b.word) {
				ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
			} else {
				break
			}
		}
	}
	if topN > len(ranked) {
		topN = len(ranked)
	}
	out := make([]string, topN)
	for i := 0; i < topN; i++ {
		out[i] = ranked[i].word
	}
	return out
}

// RuneLen counts characters, not bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate caps s at limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// TruncateWith caps s at limit runes, appending suffix if truncated.
func TruncateWith(s string, limit int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + suffix
}

var htmlTagRE = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML/XML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRE.ReplaceAllString(s, ""))
}

// hasHangul reports whether s contains at least one Hangul syllable.
func hasHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// hasLatin reports whether s contains an ASCII letter.
func hasLatin(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
