package engine

import (
	"regexp"
	"strings"
	"unicode"
)

// Transcript noise cleaning. Auto-generated captions carry bracketed
// non-speech tags, music symbols, stray timestamps, filler sounds, and
// verbatim-repeated spans; Clean strips all of them and normalizes
// whitespace. Pure function, safe to call repeatedly (idempotent).

const (
	// Spans must be at least this many runes to count as a caption
	// repetition artifact; shorter repeats are usually legitimate speech.
	minDuplicateSpan = 20
	// Upper bound on how far the repeat scanner looks for a span end.
	maxDuplicateSpan = 500
)

var noisePatterns = []string{
	// Korean tags
	`\[음악\]`, `\[박수\]`, `\[웃음\]`, `\[박수와 환호\]`,
	// English tags
	`\[Music\]`, `\[Applause\]`, `\[Laughter\]`, `\[inaudible\]`,
	`\[Inaudible\]`, `\[INAUDIBLE\]`,
	// Generic bracket placeholders: [__], [ __ ], [♪], [♪♪♪], []
	`\[\s*[_♪♫]+\s*\]`,
	`\[\s*\]`,
	// Standalone music symbols outside brackets
	`[♪♫]+`,
	// Clock-style timestamps: 1:23, 1:23:45, 12:34:56
	`\d{1,2}:\d{2}(?::\d{2})?`,
	// Korean filler sound runs
	`(?:아|어|음|으|에)\s*(?:아|어|음|으|에)\s*`,
	// English fillers, whole words only
	`\b[Uu]mm?\b`,
	`\b[Uu]hh?\b`,
	`\b[Yy]ou know\b`,
	`\b[Ss]ort of\b`,
	`\b[Kk]ind of\b`,
}

var (
	noiseRE      = regexp.MustCompile(strings.Join(noisePatterns, "|"))
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Clean removes noise patterns and duplicated consecutive spans from raw
// caption text and collapses whitespace. Empty input yields "".
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = noiseRE.ReplaceAllString(text, " ")
	text = collapseRepeats(text)
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

// collapseRepeats drops the second occurrence when a span of at least
// minDuplicateSpan runes is immediately repeated verbatim across a
// whitespace gap. The scanner prefers the shortest qualifying span so a
// repeated sentence collapses at the sentence, not paragraph, level.
func collapseRepeats(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	i := 0
	for i < len(runes) {
		j, k := findRepeat(runes, i)
		if j < 0 {
			out = append(out, runes[i])
			i++
			continue
		}
		out = append(out, runes[i:j]...)
		i = k
	}
	return string(out)
}

// findRepeat looks for the shortest span runes[i:j] (j-i >= minDuplicateSpan)
// that repeats verbatim right after a whitespace run ending at k-len(span).
// Returns (span end, resume index after the duplicate) or (-1, -1).
func findRepeat(runes []rune, i int) (int, int) {
	limit := i + maxDuplicateSpan
	if limit > len(runes) {
		limit = len(runes)
	}
	for j := i + minDuplicateSpan; j < limit; j++ {
		if !unicode.IsSpace(runes[j]) {
			continue
		}
		k := j
		for k < len(runes) && unicode.IsSpace(runes[k]) {
			k++
		}
		span := runes[i:j]
		if k+len(span) > len(runes) {
			return -1, -1
		}
		if equalRunes(runes[k:k+len(span)], span) {
			return j, k + len(span)
		}
	}
	return -1, -1
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
