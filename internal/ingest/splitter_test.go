package ingest

import (
	"strings"
	"testing"
)

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got := CleanText("The  database\tcrashed\n\nbecause of   disk pressure.")
	want := "The database crashed because of disk pressure."
	if got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}
}

func TestCleanTextDropsNoiseRuns(t *testing.T) {
	got := CleanText("Before ==========!!!======== after the separator line.")
	if strings.Contains(got, "=====") {
		t.Errorf("noise run survived cleaning: %q", got)
	}
}

func TestCleanTextEmpty(t *testing.T) {
	if got := CleanText(""); got != "" {
		t.Errorf("CleanText(\"\") = %q, want empty", got)
	}
}

func TestSplitSentencesBasic(t *testing.T) {
	text := "The database crashed because of disk pressure. Engineers restarted the affected service. As a result latency returned to normal."
	got := SplitSentences(text)
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "The database crashed because of disk pressure." {
		t.Errorf("first sentence = %q", got[0])
	}
}

func TestSplitSentencesKeepsDecimals(t *testing.T) {
	text := "Latency rose to 99.5 percent of the budget before the rollback completed."
	got := SplitSentences(text)
	if len(got) != 1 {
		t.Fatalf("decimal split the sentence: %v", got)
	}
}

func TestSplitSentencesDropsShortFragments(t *testing.T) {
	text := "Ok. Done. The deployment failed because the config was missing a key."
	got := SplitSentences(text)
	if len(got) != 1 {
		t.Fatalf("expected short fragments dropped, got %v", got)
	}
	if !strings.HasPrefix(got[0], "The deployment failed") {
		t.Errorf("unexpected sentence kept: %q", got[0])
	}
}

func TestSplitSentencesTrailingFragment(t *testing.T) {
	text := "We decided to add capacity to the primary cluster"
	got := SplitSentences(text)
	if len(got) != 1 {
		t.Fatalf("trailing unterminated sentence lost: %v", got)
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	if got := SplitSentences(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
