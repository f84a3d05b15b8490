// Package pipeline sequences classification, chain building, metrics and
// unified decision scoring over one or more contexts and assembles the
// final result payload.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/avolkov/chainsage/internal/chain"
	"github.com/avolkov/chainsage/internal/classify"
	"github.com/avolkov/chainsage/internal/decide"
	"github.com/avolkov/chainsage/internal/llm"
	"github.com/avolkov/chainsage/internal/metrics"
	"github.com/avolkov/chainsage/internal/model"
)

// PipelineError is the single controlled failure kind. It is raised only
// for caller-contract violations; every other anomaly is absorbed into a
// neutral default so the pipeline always returns a structurally valid
// payload.
type PipelineError struct {
	Reason string
}

func (e *PipelineError) Error() string {
	return "pipeline: " + e.Reason
}

// SentenceSource supplies (context, sentence) records for a set of context
// identifiers, in stable order: document order, then in-document order.
// Returning an empty result is valid.
type SentenceSource interface {
	Sentences(ctx context.Context, contexts []string) ([]model.SentenceRecord, error)
}

// ChainSource optionally supplies pre-built chain-like records per context.
// Records are arbitrary mappings consumed through tolerant field extraction.
type ChainSource interface {
	ChainRecords(ctx context.Context, contexts []string) (map[string][]model.ChainRecord, error)
}

// Pipeline orchestrates one decision intelligence run. Each call to Run is
// independent and side-effect-free; derived results are never persisted.
type Pipeline struct {
	source     SentenceSource
	chains     ChainSource // nil when no chain source is configured
	classifier *classify.Classifier
	engine     *decide.Engine
	summarizer *llm.Summarizer // nil when the decision brief is disabled
	verbose    bool
}

// NewPipeline creates a pipeline with the given configuration and sources.
// chains may be nil.
func NewPipeline(cfg *model.Config, source SentenceSource, chains ChainSource) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		source:     source,
		chains:     chains,
		classifier: classify.NewDefaultClassifier(),
		engine:     decide.NewEngine(cfg.Scoring),
		summarizer: summarizer,
		verbose:    cfg.Output.Verbose,
	}
}

// Run executes the decision pipeline over the selected contexts. The only
// error it returns is a PipelineError for an empty context selection;
// querying with no data is a valid, answerable state and yields a
// placeholder payload instead.
func (p *Pipeline) Run(ctx context.Context, contexts []string) (*model.DecisionResult, error) {
	if len(contexts) == 0 {
		return nil, &PipelineError{Reason: "at least one context must be selected"}
	}

	records, err := p.source.Sentences(ctx, contexts)
	if err != nil {
		// A failing source is treated like an empty one
		if p.verbose {
			fmt.Fprintf(os.Stderr, "Warning: sentence source: %v\n", err)
		}
		records = nil
	}
	if len(records) == 0 {
		return emptyResult("No data available", "The document store is empty."), nil
	}

	selected := make(map[string]bool, len(contexts))
	for _, c := range contexts {
		selected[c] = true
	}
	classified := make(map[string][]model.ClassifiedSentence)
	matched := 0
	for _, rec := range records {
		if !selected[rec.Context] {
			continue
		}
		matched++
		classified[rec.Context] = append(classified[rec.Context], model.ClassifiedSentence{
			Text: rec.Text,
			Role: p.classifier.Classify(rec.Text),
		})
	}
	if matched == 0 {
		return emptyResult("No data for selected contexts", "No sentences matched the chosen contexts."), nil
	}

	chainsByContext := make(map[string][]model.Chain, len(contexts))
	var allChains []model.Chain
	for _, name := range contexts {
		built := chain.Build(classified[name])
		if built == nil {
			built = []model.Chain{}
		}
		chainsByContext[name] = built
		allChains = append(allChains, built...)
	}

	result := &model.DecisionResult{
		ChainsByContext: chainsByContext,
		Metrics: safeMetrics(func() map[string]interface{} {
			return metrics.DecisionCoverage(allChains)
		}, map[string]interface{}{"action_coverage": 0.0, "outcome_coverage": 0.0}),
		Debt: safeMetrics(func() map[string]interface{} {
			return metrics.AnalyzeChains(allChains)
		}, map[string]interface{}{"broken_chains": 0, "cause_only": 0, "action_only": 0, "decision_debt": 0.0}),
		Completeness: safeMetrics(func() map[string]interface{} {
			return metrics.ChainCompleteness(allChains)
		}, map[string]interface{}{}),
		TotalChains:    len(allChains),
		ActionRankings: map[string]model.Scorecard{},
		ScoringWeights: map[string]float64{},
	}

	// Pool canonical tuples: chains built here plus any externally
	// supplied chain records, normalized through the same alias tables.
	var normalized []model.CanonicalChain
	keyCounts := make(map[string]int)
	withAction := 0

	collect := func(name string, rec model.ChainRecord) {
		for k := range rec {
			keyCounts[strings.ToLower(k)]++
		}
		canonical := decide.Normalize(name, rec)
		if canonical.Action != "" {
			withAction++
		}
		normalized = append(normalized, canonical)
	}

	for _, name := range contexts {
		for _, c := range chainsByContext[name] {
			collect(name, c.Record())
		}
	}
	if p.chains != nil {
		external, err := p.chains.ChainRecords(ctx, contexts)
		if err != nil {
			if p.verbose {
				fmt.Fprintf(os.Stderr, "Warning: chain source: %v\n", err)
			}
		} else {
			for _, name := range contexts {
				for _, rec := range external[name] {
					collect(name, rec)
				}
			}
		}
	}

	if len(normalized) > 0 {
		scored := p.engine.ScoreActions(normalized)
		unified := p.engine.PickUnified(scored)
		if unified == nil {
			unified = &model.UnifiedDecision{
				Action: "No actionable recommendation",
				Diagnostics: map[string]interface{}{
					"note":                    "No actions could be confidently extracted for scoring.",
					"observed_role_keys_top5": topKeys(keyCounts, 5),
					"chains_seen":             len(normalized),
					"chains_with_action":      withAction,
				},
				Alternatives: []model.RankedAction{},
			}
		}
		result.UnifiedDecision = unified
		result.ActionRankings = scored
		result.ScoringWeights = p.engine.Weights().Map()
	} else {
		result.UnifiedDecision = &model.UnifiedDecision{
			Action: "No actionable recommendation",
			Diagnostics: map[string]interface{}{
				"note": "No cause/action/outcome chains detected.",
			},
			Alternatives: []model.RankedAction{},
		}
	}

	// The brief runs after scoring and never feeds back into it
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		brief, err := p.summarizer.GenerateBrief(ctx, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: decision brief generation failed: %v\n", err)
		} else if brief != nil {
			result.Brief = brief
		}
	}

	return result, nil
}

// emptyResult builds the well-formed zero payload for runs with no data
func emptyResult(action, note string) *model.DecisionResult {
	return &model.DecisionResult{
		ChainsByContext: map[string][]model.Chain{},
		Metrics:         map[string]interface{}{},
		Debt:            map[string]interface{}{},
		Completeness:    map[string]interface{}{},
		TotalChains:     0,
		UnifiedDecision: &model.UnifiedDecision{
			Action:       action,
			Diagnostics:  map[string]interface{}{"note": note},
			Alternatives: []model.RankedAction{},
		},
		ActionRankings: map[string]model.Scorecard{},
		ScoringWeights: map[string]float64{},
	}
}

// safeMetrics downgrades a panicking metric computation to its fallback so
// one context's malformed data cannot abort a multi-context run
func safeMetrics(fn func() map[string]interface{}, fallback map[string]interface{}) (out map[string]interface{}) {
	defer func() {
		if r := recover(); r != nil {
			out = fallback
		}
	}()
	return fn()
}

// keyCount is one observed raw field name with its occurrence count
type keyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// topKeys returns the n most common raw field names, count descending then
// key ascending
func topKeys(counts map[string]int, n int) []keyCount {
	out := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, keyCount{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
