package engine

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Entity is one recognized dictionary entity with its mention count.
// Keyword is the first surface form that matched; Name is canonical, so
// synonyms ("삼성", "Samsung", "삼성전자") aggregate into a single entry.
type Entity struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// ExtractEntities scans text against the built-in dictionary plus an
// optional extra dictionary (extra entries override built-ins on keyword
// collisions). Longer keywords are matched first and claim their byte
// span, so "SK하이닉스" in the text never also counts as "하이닉스".
func ExtractEntities(text string, extra map[string]DictEntry) []Entity {
	if strings.TrimSpace(text) == "" {
		return []Entity{}
	}

	dict := defaultDict
	if len(extra) > 0 {
		dict = make(map[string]DictEntry, len(defaultDict)+len(extra))
		for k, v := range defaultDict {
			dict[k] = v
		}
		for k, v := range extra {
			dict[k] = v
		}
	}

	keywords := make([]string, 0, len(dict))
	for k := range dict {
		keywords = append(keywords, k)
	}
	// Longest first; lexicographic tie-break keeps the scan deterministic.
	sort.Slice(keywords, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keywords[i]), utf8.RuneCountInString(keywords[j])
		if li != lj {
			return li > lj
		}
		return keywords[i] < keywords[j]
	})

	lowered := asciiLower(text)
	claimed := make([]bool, len(text))

	type agg struct {
		entry   DictEntry
		keyword string
		count   int
		order   int
	}
	found := make(map[string]*agg)
	order := 0

	for _, kw := range keywords {
		var positions []int
		if hasHangul(kw) && !hasLatin(kw) {
			positions = findAll(text, kw, claimed, false)
		} else {
			positions = findAll(lowered, asciiLower(kw), claimed, true)
		}
		if len(positions) == 0 {
			continue
		}
		entry := dict[kw]
		key := string(entry.Type) + ":" + entry.Name
		a, ok := found[key]
		if !ok {
			a = &agg{entry: entry, keyword: kw, order: order}
			order++
			found[key] = a
		}
		a.count += len(positions)
	}

	out := make([]*agg, 0, len(found))
	for _, a := range found {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].order < out[j].order
	})

	entities := make([]Entity, len(out))
	for i, a := range out {
		entities[i] = Entity{
			Type:    string(a.entry.Type),
			Name:    a.entry.Name,
			Keyword: a.keyword,
			Count:   a.count,
		}
	}
	return entities
}

// findAll returns start offsets of unclaimed occurrences of sub in s and
// claims each accepted span. With boundary set, both neighbors of the
// match must be non-word runes (covers Latin keywords appearing inside
// larger identifiers, e.g. "EV" in "EVA").
func findAll(s, sub string, claimed []bool, boundary bool) []int {
	if sub == "" {
		return nil
	}
	var positions []int
	off := 0
	for {
		i := strings.Index(s[off:], sub)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(sub)
		off = start + 1

		if boundary && !atWordBoundary(s, start, end) {
			continue
		}
		if spanClaimed(claimed, start, end) {
			continue
		}
		for p := start; p < end; p++ {
			claimed[p] = true
		}
		positions = append(positions, start)
	}
	return positions
}

func spanClaimed(claimed []bool, start, end int) bool {
	for p := start; p < end; p++ {
		if claimed[p] {
			return true
		}
	}
	return false
}

func atWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// asciiLower lowercases ASCII letters only, leaving byte offsets intact
// for multibyte text.
func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
