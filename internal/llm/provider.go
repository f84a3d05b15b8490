// Package llm generates the optional decision brief: a short narrative of
// an already-computed decision result. The brief is produced after scoring
// and never feeds back into it; every number in the prompt comes from the
// deterministic payload.
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Brief generates a narrative for a decision result
	Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// BriefRequest contains the input for brief generation
type BriefRequest struct {
	// Result is the computed decision payload to narrate
	Result *model.DecisionResult

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// BriefResponse contains the generated narrative
type BriefResponse struct {
	BriefMD    string
	Model      string
	TokensUsed int
	Warnings   []string
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default brief prompt from a decision result.
// The model is asked to restate computed numbers, never to produce new
// ones.
func BuildPrompt(result *model.DecisionResult) string {
	var b strings.Builder

	b.WriteString(`You are writing a short operational brief for a decision report. The report was computed deterministically from documented cause/action/outcome chains.

CRITICAL RULES:
1. Restate only the numbers given below. DO NOT invent scores, counts, or percentages.
2. Never claim an action is correct or guaranteed to work - only describe its documented support.
3. If the data below is sparse, say so explicitly.

Recommended action: `)

	if result.UnifiedDecision != nil {
		b.WriteString(result.UnifiedDecision.Action)
		if sc := result.UnifiedDecision.Scorecard; sc != nil {
			fmt.Fprintf(&b, "\nScore: %.3f (support %d, cause coverage %.3f, outcome strength %.3f, recency %.3f, constraint fit %.3f, debt penalty %.3f)",
				sc.Score, sc.Support, sc.CauseCoverage, sc.OutcomeStrength, sc.Recency, sc.ConstraintFit, sc.DebtPenalty)
			fmt.Fprintf(&b, "\nObserved in contexts: %s", strings.Join(sc.Contexts, ", "))
		}
	} else {
		b.WriteString("(none)")
	}

	fmt.Fprintf(&b, "\nTotal chains analyzed: %d\n", result.TotalChains)

	if result.UnifiedDecision != nil && len(result.UnifiedDecision.Alternatives) > 0 {
		b.WriteString("\nAlternatives:\n")
		for _, alt := range result.UnifiedDecision.Alternatives {
			fmt.Fprintf(&b, "- %s (score %.3f)\n", alt.Action, alt.Scorecard.Score)
		}
	}

	if len(result.Debt) > 0 {
		b.WriteString("\nDecision debt:\n")
		keys := make([]string, 0, len(result.Debt))
		for k := range result.Debt {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", k, result.Debt[k])
		}
	}

	b.WriteString("\nWrite a 3-5 sentence brief in markdown: what the evidence supports, how strong the support is, and what documentation gaps remain.")

	return b.String()
}
