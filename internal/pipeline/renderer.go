package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
)

// Renderer writes decision results as JSON, Markdown, or a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the complete result payload to the given path
func (r *Renderer) RenderJSON(result *model.DecisionResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report to the given path
func (r *Renderer) RenderMarkdown(result *model.DecisionResult, path string) error {
	var b strings.Builder

	b.WriteString("# Decision Intelligence Report\n\n")

	b.WriteString("## Recommended Action\n\n")
	if u := result.UnifiedDecision; u != nil {
		fmt.Fprintf(&b, "**%s**\n\n", u.Action)
		if u.Scorecard != nil {
			c := u.Scorecard
			fmt.Fprintf(&b, "| Signal | Value |\n|---|---|\n")
			fmt.Fprintf(&b, "| Score | %.4f |\n", c.Score)
			fmt.Fprintf(&b, "| Support (contexts) | %d |\n", c.Support)
			fmt.Fprintf(&b, "| Cause coverage | %.3f |\n", c.CauseCoverage)
			fmt.Fprintf(&b, "| Outcome strength | %.3f |\n", c.OutcomeStrength)
			fmt.Fprintf(&b, "| Recency | %.1f |\n", c.Recency)
			fmt.Fprintf(&b, "| Constraint fit | %.3f |\n", c.ConstraintFit)
			fmt.Fprintf(&b, "| Debt penalty | %.3f |\n", c.DebtPenalty)
			b.WriteString("\n")
		}
		if len(u.Alternatives) > 0 {
			b.WriteString("### Alternatives\n\n")
			for i, alt := range u.Alternatives {
				fmt.Fprintf(&b, "%d. %s (score %.4f)\n", i+1, alt.Action, alt.Scorecard.Score)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Coverage\n\n")
	fmt.Fprintf(&b, "Total chains: %d\n\n", result.TotalChains)
	writeMetricMap(&b, result.Metrics)
	b.WriteString("\n## Decision Debt\n\n")
	writeMetricMap(&b, result.Debt)
	b.WriteString("\n## Completeness\n\n")
	writeMetricMap(&b, result.Completeness)

	if r.includeFooter {
		b.WriteString("\n---\n")
		b.WriteString("Generated by chainsage. Rule-based, deterministic, fully explainable; no inference.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}
	return nil
}

// RenderSummary prints a terse result summary to stdout
func (r *Renderer) RenderSummary(result *model.DecisionResult) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════")
	fmt.Println("  Decision Intelligence Summary")
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("Total chains:    %d\n", result.TotalChains)

	if v, ok := result.Metrics["action_coverage"]; ok {
		fmt.Printf("Action coverage:  %v\n", v)
	}
	if v, ok := result.Debt["decision_debt"]; ok {
		fmt.Printf("Decision debt:    %v\n", v)
	}

	if u := result.UnifiedDecision; u != nil {
		fmt.Println()
		fmt.Printf("Recommended: %s\n", u.Action)
		if u.Scorecard != nil {
			fmt.Printf("Score:       %.4f (support %d, outcome strength %.3f)\n",
				u.Scorecard.Score, u.Scorecard.Support, u.Scorecard.OutcomeStrength)
		}
		for i, alt := range u.Alternatives {
			fmt.Printf("  alt %d: %s (%.4f)\n", i+1, alt.Action, alt.Scorecard.Score)
		}
	}
	fmt.Println()
}

// writeMetricMap renders a metric payload with stable key order
func writeMetricMap(b *strings.Builder, m map[string]interface{}) {
	if len(m) == 0 {
		b.WriteString("No data.\n")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %v\n", k, m[k])
	}
}
