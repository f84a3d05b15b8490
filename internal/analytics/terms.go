// Package analytics computes descriptive, read-only statistics over the
// stored sentence streams. Nothing here feeds scoring; it exists to show
// operators what their documentation contains.
package analytics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

// stopwords are excluded from term statistics
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"were": true, "with": true, "that": true, "this": true, "from": true,
	"have": true, "has": true, "had": true, "not": true, "but": true,
	"all": true, "can": true, "will": true, "our": true, "their": true,
	"its": true, "been": true, "when": true, "which": true, "into": true,
	"after": true, "before": true, "then": true, "than": true, "also": true,
	"more": true, "some": true, "such": true, "these": true, "those": true,
	"where": true, "while": true, "would": true, "could": true, "should": true,
}

// issueTerms mark sentences describing problems
var issueTerms = map[string]bool{
	"error": true, "failure": true, "failed": true, "timeout": true,
	"exception": true, "latency": true, "crash": true, "authentication": true,
	"unauthorized": true, "unavailable": true, "degraded": true, "issue": true,
}

// fixTerms mark sentences describing mitigations
var fixTerms = map[string]bool{
	"restart": true, "rollback": true, "increase": true, "update": true,
	"patch": true, "disable": true, "enable": true, "retry": true,
	"scale": true,
}

// Tokenize lowercases the text and returns its alphabetic tokens of three
// or more letters, minus stopwords
func Tokenize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// TermCount is one entry of a term frequency ranking
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TopTerms returns the most frequent terms across all sentences. Ties
// break alphabetically so the ranking is stable.
func TopTerms(sentences []model.SentenceRecord, limit int) []TermCount {
	counts := make(map[string]int)
	for _, s := range sentences {
		for _, tok := range Tokenize(s.Text) {
			counts[tok]++
		}
	}
	return rankTerms(counts, limit)
}

// TopTermsByContext returns the most frequent terms within one context
func TopTermsByContext(sentences []model.SentenceRecord, context string, limit int) []TermCount {
	counts := make(map[string]int)
	for _, s := range sentences {
		if s.Context != context {
			continue
		}
		for _, tok := range Tokenize(s.Text) {
			counts[tok]++
		}
	}
	return rankTerms(counts, limit)
}

func rankTerms(counts map[string]int, limit int) []TermCount {
	ranked := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		ranked = append(ranked, TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// KnowledgeDensity returns the sentence count per context, largest first
func KnowledgeDensity(sentences []model.SentenceRecord) []TermCount {
	counts := make(map[string]int)
	for _, s := range sentences {
		counts[s.Context]++
	}
	return rankTerms(counts, 0)
}

// IssueDensity counts sentences containing issue signals and the total
// sentence count
func IssueDensity(sentences []model.SentenceRecord) (int, int) {
	return signalDensity(sentences, issueTerms)
}

// FixDensity counts sentences containing mitigation signals and the total
// sentence count
func FixDensity(sentences []model.SentenceRecord) (int, int) {
	return signalDensity(sentences, fixTerms)
}

func signalDensity(sentences []model.SentenceRecord, signals map[string]bool) (int, int) {
	hits := 0
	for _, s := range sentences {
		if containsAny(s.Text, signals) {
			hits++
		}
	}
	return hits, len(sentences)
}

// IssueFixPairs returns sentences where problem and mitigation terms
// co-occur. These tend to be runbook-grade statements.
func IssueFixPairs(sentences []model.SentenceRecord) []string {
	var pairs []string
	for _, s := range sentences {
		if containsAny(s.Text, issueTerms) && containsAny(s.Text, fixTerms) {
			pairs = append(pairs, s.Text)
		}
	}
	return pairs
}

func containsAny(text string, signals map[string]bool) bool {
	for _, tok := range Tokenize(text) {
		if signals[tok] {
			return true
		}
	}
	return false
}

// ContextMaturity is the distinct-to-total token ratio: higher means
// richer, more varied language. Zero when there are no tokens.
func ContextMaturity(sentences []model.SentenceRecord) float64 {
	total := 0
	distinct := make(map[string]bool)
	for _, s := range sentences {
		for _, tok := range Tokenize(s.Text) {
			total++
			distinct[tok] = true
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(len(distinct)) / float64(total)
}
