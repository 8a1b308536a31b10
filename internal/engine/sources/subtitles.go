package sources

import (
	"strconv"
	"strings"

	"github.com/JangHyuckYun/mcp-youtube-intelligence/internal/engine"
)

// Subtitle file parsing for the yt-dlp fallback path. YouTube auto-subs
// repeat the previous cue's text in rolling captions, so consecutive
// duplicate lines are collapsed.

// ParseVTT parses WebVTT subtitle content into timed segments.
func ParseVTT(content string) []engine.TimedSegment {
	var segs []engine.TimedSegment
	lines := strings.Split(content, "\n")
	i := 0
	lastText := ""
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		i++
		if line == "" || line == "WEBVTT" ||
			strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") ||
			strings.HasPrefix(line, "Kind:") || strings.HasPrefix(line, "Language:") {
			continue
		}
		if !strings.Contains(line, "-->") {
			continue
		}
		start, dur, ok := parseCueTiming(line, ".")
		if !ok {
			continue
		}
		var textLines []string
		for i < len(lines) {
			t := strings.TrimSpace(lines[i])
			if t == "" {
				break
			}
			i++
			t = engine.CleanHTML(stripCueTags(t))
			if t != "" && t != lastText {
				textLines = append(textLines, t)
				lastText = t
			}
		}
		if len(textLines) > 0 {
			segs = append(segs, engine.TimedSegment{
				Start: start,
				Dur:   dur,
				Text:  strings.Join(textLines, " "),
			})
		}
	}
	return segs
}

// ParseSRT parses SubRip subtitle content into timed segments.
func ParseSRT(content string) []engine.TimedSegment {
	var segs []engine.TimedSegment
	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	lastText := ""
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		// First line is the cue index, second the timing.
		timing := lines[1]
		if !strings.Contains(timing, "-->") {
			if !strings.Contains(lines[0], "-->") {
				continue
			}
			timing = lines[0]
			lines = append([]string{""}, lines...)
		}
		start, dur, ok := parseCueTiming(timing, ",")
		if !ok {
			continue
		}
		var textLines []string
		for _, t := range lines[2:] {
			t = engine.CleanHTML(stripCueTags(strings.TrimSpace(t)))
			if t != "" && t != lastText {
				textLines = append(textLines, t)
				lastText = t
			}
		}
		if len(textLines) > 0 {
			segs = append(segs, engine.TimedSegment{
				Start: start,
				Dur:   dur,
				Text:  strings.Join(textLines, " "),
			})
		}
	}
	return segs
}

// JoinSegments concatenates segment texts with single spaces.
func JoinSegments(segs []engine.TimedSegment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// parseCueTiming parses "HH:MM:SS.mmm --> HH:MM:SS.mmm" (VTT, sep ".") or
// "HH:MM:SS,mmm --> HH:MM:SS,mmm" (SRT, sep ","), returning start and
// duration in seconds.
func parseCueTiming(line, msSep string) (start, dur float64, ok bool) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	from, ok1 := parseTimecode(strings.TrimSpace(parts[0]), msSep)
	// VTT cue settings (align, position) may trail the end timestamp.
	endField := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endField) == 0 {
		return 0, 0, false
	}
	to, ok2 := parseTimecode(endField[0], msSep)
	if !ok1 || !ok2 || to < from {
		return 0, 0, false
	}
	return from, to - from, true
}

func parseTimecode(tc, msSep string) (float64, bool) {
	ms := 0.0
	if i := strings.LastIndex(tc, msSep); i >= 0 {
		frac, err := strconv.Atoi(tc[i+1:])
		if err != nil {
			return 0, false
		}
		ms = float64(frac) / 1000.0
		tc = tc[:i]
	}
	fields := strings.Split(tc, ":")
	secs := 0.0
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, false
		}
		secs = secs*60 + float64(v)
	}
	return secs + ms, true
}

// stripCueTags removes inline VTT/SRT cue tags like <00:00:01.000> and <c>.
func stripCueTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
