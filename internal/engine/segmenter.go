package engine

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segments smaller than this merge into the previous one.
const minSegmentChars = 100

// Target words per segment when falling back to length-based splitting.
const targetWordsPerSegment = 500

// Segment is one topic-coherent slice of a transcript.
type Segment struct {
	Segment   int    `json:"segment"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
	Topic     string `json:"topic"`
}

// Explicit topic-transition phrases, Korean and English. Matches only count
// when they occur at a sentence start (checked separately, RE2 has no
// lookbehind).
var topicMarkers = []string{
	// Korean
	`(?:자[,.]?\s*)?(?:다음|두\s*번째|세\s*번째|네\s*번째|첫\s*번째|마지막)\s*(?:주제|얘기|이야기|포인트)`,
	`오늘의?\s*(?:첫|두|세|네|다섯)\s*번째\s*(?:주제|포인트)`,
	`(?:자[,.]?\s*)?(?:다음으로|그\s*다음)`,
	`자[,.]?\s*이번에는`,
	`첫\s*번째\s*(?:주제는|포인트는)`,
	`다음으로\s`,
	// English, topic transition
	`(?:next|first|second|third|fourth|fifth|last)\s+(?:topic|point|thing)`,
	`moving\s+on\s+to`,
	`let'?s\s+(?:talk|move)\s+(?:about|on)`,
	// English, summary and conclusion
	`in\s+summary`,
	`to\s+(?:summarize|conclude|wrap\s+up)`,
	`in\s+conclusion`,
	`finally[,]?\s`,
}

var markerRE = regexp.MustCompile(`(?i)(?:` + strings.Join(topicMarkers, "|") + `)`)

// atSentenceStart reports whether byte offset pos in s begins a sentence:
// start of text, after a newline, after "。", or after sentence-ending
// punctuation plus whitespace.
func atSentenceStart(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	prev, size := utf8.DecodeLastRuneInString(s[:pos])
	if prev == '\n' || prev == '。' {
		return true
	}
	if unicode.IsSpace(prev) && pos-size > 0 {
		prev2, _ := utf8.DecodeLastRuneInString(s[:pos-size])
		if prev2 == '.' || prev2 == '!' || prev2 == '?' {
			return true
		}
	}
	return false
}

// splitOnPunct splits text after sentence-ending punctuation followed by
// whitespace, keeping every non-empty part.
func splitOnPunct(text string) []string {
	var parts []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if isSentenceEnd(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(b.String()); s != "" {
				parts = append(parts, b.String())
			}
			b.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		parts = append(parts, b.String())
	}
	return parts
}

// SegmentTopics splits transcript text into topic segments.
//
// Strategy: marker-based splitting on explicit transitions first; for long
// marker-less text, length plus keyword-shift splitting. Length-derived
// segments under minSegmentChars merge into the previous one; marker-derived
// segments stay as spoken, a transition phrase is authoritative even when the
// speaker keeps it brief. Each segment gets a top-3 keyword label.
func SegmentTopics(text string) []Segment {
	if strings.TrimSpace(text) == "" {
		return []Segment{}
	}

	var boundaries []int
	for _, loc := range markerRE.FindAllStringIndex(text, -1) {
		if atSentenceStart(text, loc[0]) {
			boundaries = append(boundaries, loc[0])
		}
	}

	var raw []string
	fromMarkers := len(boundaries) > 0
	if !fromMarkers {
		if len(strings.Fields(text)) > targetWordsPerSegment {
			raw = fallbackSplit(text)
		} else {
			return []Segment{singleSegment(text)}
		}
	} else {
		if before := strings.TrimSpace(text[:boundaries[0]]); before != "" {
			raw = append(raw, before)
		}
		for i, start := range boundaries {
			end := len(text)
			if i+1 < len(boundaries) {
				end = boundaries[i+1]
			}
			if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
				raw = append(raw, chunk)
			}
		}
		if len(raw) == 0 {
			return []Segment{singleSegment(text)}
		}
	}

	merged := []string{raw[0]}
	for _, seg := range raw[1:] {
		if !fromMarkers && utf8.RuneCountInString(seg) < minSegmentChars {
			merged[len(merged)-1] = merged[len(merged)-1] + " " + seg
		} else {
			merged = append(merged, seg)
		}
	}

	out := make([]Segment, len(merged))
	for i, s := range merged {
		out[i] = Segment{
			Segment:   i,
			Text:      s,
			CharCount: utf8.RuneCountInString(s),
			Topic:     strings.Join(extractKeywords(s, 3), ", "),
		}
	}
	return out
}

func singleSegment(text string) Segment {
	t := strings.TrimSpace(text)
	return Segment{
		Segment:   0,
		Text:      t,
		CharCount: utf8.RuneCountInString(t),
		Topic:     strings.Join(extractKeywords(t, 3), ", "),
	}
}

// fallbackSplit handles long marker-less text: accumulate sentences into
// roughly targetWordsPerSegment windows, then refine split points by
// keyword shift.
func fallbackSplit(text string) []string {
	sentences := splitOnPunct(text)
	if len(sentences) <= 2 {
		return []string{strings.TrimSpace(text)}
	}

	var segments []string
	var current []string
	words := 0
	for _, sent := range sentences {
		current = append(current, strings.TrimSpace(sent))
		words += len(strings.Fields(sent))
		if words >= targetWordsPerSegment {
			segments = append(segments, strings.TrimSpace(strings.Join(current, " ")))
			current = nil
			words = 0
		}
	}
	if len(current) > 0 {
		tail := strings.TrimSpace(strings.Join(current, " "))
		if tail != "" {
			if len(segments) > 0 && utf8.RuneCountInString(tail) < minSegmentChars {
				segments[len(segments)-1] = segments[len(segments)-1] + " " + tail
			} else {
				segments = append(segments, tail)
			}
		}
	}

	if len(segments) >= 2 {
		segments = refineSplits(text, sentences, len(segments))
	}
	if len(segments) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return segments
}

// refineSplits picks the nSegments-1 sentence boundaries with the lowest
// left/right keyword similarity, keeping splits a minimum distance apart.
func refineSplits(text string, sentences []string, nSegments int) []string {
	if nSegments <= 1 || len(sentences) <= nSegments {
		return []string{strings.TrimSpace(text)}
	}

	bags := make([]map[string]int, len(sentences))
	for i, s := range sentences {
		bags[i] = wordBag(s)
	}

	scores := make([]float64, 0, len(sentences)-1)
	for i := 1; i < len(sentences); i++ {
		left := map[string]int{}
		for _, b := range bags[:i] {
			for k, v := range b {
				left[k] += v
			}
		}
		right := map[string]int{}
		for _, b := range bags[i:] {
			for k, v := range b {
				right[k] += v
			}
		}
		scores = append(scores, cosine(left, right))
	}

	nSplits := nSegments - 1
	minDist := len(sentences) / (nSegments + 1)
	if minDist < 1 {
		minDist = 1
	}

	candidates := make([]int, len(scores))
	for i := range candidates {
		candidates[i] = i
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] < scores[candidates[b]]
	})

	var splits []int
	for _, idx := range candidates {
		pos := idx + 1
		ok := true
		for _, s := range splits {
			d := pos - s
			if d < 0 {
				d = -d
			}
			if d < minDist {
				ok = false
				break
			}
		}
		if ok {
			splits = append(splits, pos)
			if len(splits) == nSplits {
				break
			}
		}
	}
	if len(splits) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	sort.Ints(splits)

	var result []string
	prev := 0
	for _, si := range splits {
		if seg := strings.TrimSpace(joinSentences(sentences[prev:si])); seg != "" {
			result = append(result, seg)
		}
		prev = si
	}
	if tail := strings.TrimSpace(joinSentences(sentences[prev:])); tail != "" {
		result = append(result, tail)
	}
	return result
}

func joinSentences(sents []string) string {
	trimmed := make([]string, len(sents))
	for i, s := range sents {
		trimmed[i] = strings.TrimSpace(s)
	}
	return strings.Join(trimmed, " ")
}
