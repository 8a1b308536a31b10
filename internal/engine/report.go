package engine

import (
	"fmt"
	"strings"
)

// ReportInput carries everything BuildReport needs. Fetching and analysis
// happen upstream so the report itself stays a pure formatting step.
type ReportInput struct {
	VideoID         string
	Title           string
	Channel         string
	DurationSeconds int
	Lang            string
	Summary         string
	Segments        []Segment
	Entities        []Entity
	// Comments is nil when comment analysis was excluded; a zero-count
	// summary means no comments were found.
	Comments *CommentSummary
}

var typeLabels = map[string]string{
	"person":      "Person",
	"company":     "Company",
	"technology":  "Technology",
	"index":       "Index",
	"sector":      "Sector",
	"crypto":      "Cryptocurrency",
	"macro":       "Macro",
	"institution": "Institution",
	"product":     "Product",
	"commodity":   "Commodity",
	"country":     "Country",
	"region":      "Region",
}

// Display order for entity groups. Types not listed sort after, by name.
var typeOrder = []string{
	"company", "person", "technology", "sector", "crypto",
	"index", "macro", "institution", "product", "commodity",
	"country", "region",
}

// BuildReport renders a structured markdown analysis report.
func BuildReport(in ReportInput) string {
	title := in.Title
	if title == "" {
		title = in.VideoID
	}
	channel := in.Channel
	if channel == "" {
		channel = "N/A"
	}
	lang := in.Lang
	if lang == "" {
		lang = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# 📹 Video Analysis Report: %s\n\n", title)
	fmt.Fprintf(&b, "> Channel: %s | Duration: %s | Language: %s\n\n",
		channel, formatDuration(in.DurationSeconds), lang)
	b.WriteString("## 📑 Table of Contents\n\n")
	b.WriteString("1. [Summary](#summary)\n")
	b.WriteString("2. [Key Topics](#key-topics)\n")
	b.WriteString("3. [Detailed Analysis](#detailed-analysis)\n")
	b.WriteString("4. [Keywords & Entities](#keywords--entities)\n")
	b.WriteString("5. [Viewer Reactions](#viewer-reactions)\n\n")
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "## 1. Summary\n\n%s\n\n", in.Summary)

	b.WriteString("## 2. Key Topics\n\n")
	b.WriteString("| # | Topic | Keywords | Timespan |\n")
	b.WriteString("|---|-------|----------|----------|\n")
	times := estimateSegmentTimes(in.Segments, in.DurationSeconds)
	for i, seg := range in.Segments {
		label := seg.Topic
		if k := strings.SplitN(seg.Topic, ", ", 2); len(k) > 0 && k[0] != "" {
			label = k[0]
		}
		span := ""
		if times[i][0] != "" {
			span = times[i][0] + "~" + times[i][1]
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, label, seg.Topic, span)
	}
	b.WriteString("\n")

	b.WriteString("## 3. Detailed Analysis\n\n")
	for i, seg := range in.Segments {
		topic := seg.Topic
		if topic == "" {
			topic = fmt.Sprintf("Segment %d", i+1)
		}
		fmt.Fprintf(&b, "### Topic %d: %s\n\n%s\n\n", i+1, topic, Truncate(seg.Text, 500))
	}

	b.WriteString("## 4. Keywords & Entities\n\n")
	writeEntityGroups(&b, in.Entities)
	b.WriteString("\n")

	b.WriteString("## 5. Viewer Reactions\n\n")
	writeCommentSection(&b, in.Comments)

	return b.String()
}

func writeEntityGroups(b *strings.Builder, entities []Entity) {
	if len(entities) == 0 {
		b.WriteString("- (No entities extracted)\n")
		return
	}
	grouped := map[string][]string{}
	for _, e := range entities {
		seen := false
		for _, n := range grouped[e.Type] {
			if n == e.Name {
				seen = true
				break
			}
		}
		if !seen {
			grouped[e.Type] = append(grouped[e.Type], e.Name)
		}
	}

	emitted := map[string]bool{}
	emit := func(t string) {
		names, ok := grouped[t]
		if !ok || emitted[t] {
			return
		}
		emitted[t] = true
		label, ok := typeLabels[t]
		if !ok {
			label = t
		}
		if len(names) > 10 {
			names = names[:10]
		}
		fmt.Fprintf(b, "- **%s**: %s\n", label, strings.Join(names, ", "))
	}
	for _, t := range typeOrder {
		emit(t)
	}
	rest := make([]string, 0, len(grouped))
	for t := range grouped {
		if !emitted[t] {
			rest = append(rest, t)
		}
	}
	for i := 1; i < len(rest); i++ {
		for j := i; j > 0 && rest[j] < rest[j-1]; j-- {
			rest[j], rest[j-1] = rest[j-1], rest[j]
		}
	}
	for _, t := range rest {
		emit(t)
	}
}

func writeCommentSection(b *strings.Builder, cs *CommentSummary) {
	if cs == nil {
		b.WriteString("- (Comment analysis excluded)\n")
		return
	}
	if cs.Count == 0 {
		b.WriteString("- No comments\n")
		return
	}
	pos := int(cs.SentimentRatio["positive"] * 100)
	neg := int(cs.SentimentRatio["negative"] * 100)
	neu := int(cs.SentimentRatio["neutral"] * 100)
	fmt.Fprintf(b, "- Total comments: %d\n", cs.Count)
	fmt.Fprintf(b, "- Sentiment: Positive %d%% / Negative %d%% / Neutral %d%%\n", pos, neg, neu)
	b.WriteString("- Top opinions:\n")
	top := cs.TopComments
	if len(top) > 5 {
		top = top[:5]
	}
	for _, c := range top {
		author := c.Author
		if author == "" {
			author = "?"
		}
		fmt.Fprintf(b, "  - **%s** (%s, 👍%d): %s\n", author, c.Sentiment, c.Likes, c.Text)
	}
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "N/A"
	}
	return formatTimestamp(float64(seconds))
}

func formatTimestamp(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// estimateSegmentTimes maps topic segments onto the video timeline in
// proportion to their character counts. Without a duration every span is
// empty.
func estimateSegmentTimes(segments []Segment, totalDuration int) [][2]string {
	times := make([][2]string, len(segments))
	if len(segments) == 0 {
		return times
	}
	if totalDuration <= 0 {
		return times
	}
	totalChars := 0
	for _, s := range segments {
		totalChars += s.CharCount
	}
	if totalChars == 0 {
		totalChars = 1
	}
	cumulative := 0
	for i, s := range segments {
		startFrac := float64(cumulative) / float64(totalChars)
		cumulative += s.CharCount
		endFrac := float64(cumulative) / float64(totalChars)
		times[i] = [2]string{
			formatTimestamp(startFrac * float64(totalDuration)),
			formatTimestamp(endFrac * float64(totalDuration)),
		}
	}
	return times
}
