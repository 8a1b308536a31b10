package engine

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize("", 0, 0); got != "" {
		t.Errorf("Summarize(\"\") = %q, want empty", got)
	}
	if got := Summarize("   \n ", 0, 0); got != "" {
		t.Errorf("Summarize(whitespace) = %q, want empty", got)
	}
}

func TestSummarizeNoSentencesReturnsTruncatedText(t *testing.T) {
	got := Summarize("short text", 0, 0)
	if got != "short text" {
		t.Errorf("got %q, want %q", got, "short text")
	}
}

func TestSummarizeRespectsCharBudget(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("This market commentary covers earnings, rates, currencies and positioning in depth. ")
	}
	got := Summarize(b.String(), 0, 300)
	if got == "" {
		t.Fatal("expected non-empty summary")
	}
	if n := utf8.RuneCountInString(got); n > 300 {
		t.Errorf("summary length %d exceeds budget 300", n)
	}
}

func TestSummarizeDeduplicatesIdenticalSentences(t *testing.T) {
	s := "Golang testing is wonderful for developers everywhere."
	got := Summarize(s+" "+s, 0, 0)
	if got != s {
		t.Errorf("got %q, want single %q", got, s)
	}
}

func TestSummarizePreservesReadingOrder(t *testing.T) {
	text := "Alpha quarter results beat every single forecast sharply. " +
		"Filler sentence with routine words carrying little weight here. " +
		"Another plain middle sentence keeps the narrative moving along. " +
		"Omega guidance for next year was raised substantially higher."
	got := Summarize(text, 2, 0)
	ia := strings.Index(got, "Alpha")
	io := strings.Index(got, "Omega")
	if ia >= 0 && io >= 0 && io < ia {
		t.Errorf("sentences out of reading order: %q", got)
	}
	if ia < 0 && io < 0 {
		t.Errorf("expected a recognizable sentence in %q", got)
	}
}

func TestSummarizeCueSentenceWins(t *testing.T) {
	text := "The weather was mild on the day of the recording session. " +
		"Cameras and microphones worked fine throughout the entire shoot. " +
		"In summary, the company will double capital spending on chips. " +
		"The studio lighting needed a small adjustment before starting."
	got := Summarize(text, 1, 0)
	if !strings.Contains(got, "In summary") {
		t.Errorf("cue-phrase sentence not selected: %q", got)
	}
}

func TestSummarizeMaxSentences(t *testing.T) {
	text := "First distinct point about fiscal policy appears right here. " +
		"Second distinct point covers semiconductor capacity growth rates. " +
		"Third distinct point examines currency moves and trade balances. " +
		"Fourth distinct point reviews energy markets and shipping costs."
	got := Summarize(text, 2, 10000)
	count := strings.Count(got, ".")
	if count > 2 {
		t.Errorf("expected at most 2 sentences, got %d in %q", count, got)
	}
}
