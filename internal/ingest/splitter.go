package ingest

import (
	"regexp"
	"strings"
)

var (
	wsRun    = regexp.MustCompile(`\s+`)
	noiseRun = regexp.MustCompile(`[^\w\s]{10,}`)
)

// minSentenceLen drops trivial fragments that carry no structure
const minSentenceLen = 20

// CleanText removes obvious noise without destroying meaning: whitespace
// runs collapse to a single space and long non-word sequences (binary
// junk, separators) are dropped.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = wsRun.ReplaceAllString(text, " ")
	text = noiseRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitSentences splits text into sentences on terminator-plus-whitespace
// boundaries. Deterministic by construction; no NLP involved. Fragments
// shorter than minSentenceLen are discarded, including a trailing fragment
// without a terminator.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if len(s) >= minSentenceLen {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Only split when whitespace follows, so decimals and
			// abbreviations mid-token stay together
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t' || text[i+1] == '\n') {
				flush()
			}
		}
	}
	flush()

	return sentences
}
