// Package decide implements the unified decision engine: it normalizes
// heterogeneous chain records into canonical tuples, aggregates them by
// action across contexts, computes a weighted, fully explainable score per
// action and selects the top-ranked action with ordered alternatives.
package decide

import (
	"math"
	"sort"
	"strings"

	"github.com/avolkov/chainsage/internal/model"
)

// Engine scores and ranks candidate actions. Weights are fixed at
// construction; the engine itself carries no mutable state between calls.
type Engine struct {
	weights model.Weights
}

// NewEngine creates an engine with the given scoring weights
func NewEngine(weights model.Weights) *Engine {
	return &Engine{weights: weights}
}

// Weights returns the scoring weights in use
func (e *Engine) Weights() model.Weights {
	return e.weights
}

// actionStats accumulates per-action aggregates during a single scoring run
type actionStats struct {
	chains             []model.CanonicalChain
	contexts           map[string]bool
	causes             int
	causesWithAction   int
	actionsWithOutcome int
	totalActions       int
	latestTS           string
	constraintHits     int
	constraintTotal    int
	debtNoOutcome      int
	debtNoCause        int
}

// ScoreActions aggregates canonical chains by normalized action text and
// computes a scorecard per action. Chains with no resolvable action are
// skipped entirely. The "latest" timestamp is the lexicographic maximum of
// the non-empty timestamps seen; no date parsing happens anywhere.
func (e *Engine) ScoreActions(chains []model.CanonicalChain) map[string]model.Scorecard {
	byAction := make(map[string]*actionStats)

	for _, ch := range chains {
		action := strings.ToLower(strings.TrimSpace(ch.Action))
		if action == "" {
			continue
		}

		stats := byAction[action]
		if stats == nil {
			stats = &actionStats{contexts: make(map[string]bool)}
			byAction[action] = stats
		}

		stats.chains = append(stats.chains, ch)
		stats.contexts[ch.Context] = true
		stats.totalActions++
		if ch.Timestamp != "" && ch.Timestamp > stats.latestTS {
			stats.latestTS = ch.Timestamp
		}

		if ch.Cause != "" {
			stats.causes++
			stats.causesWithAction++
		} else {
			stats.debtNoCause++
		}

		if ch.Outcome != "" {
			stats.actionsWithOutcome++
		} else {
			stats.debtNoOutcome++
		}

		// No constraint evaluator is wired in: a present constraint list
		// counts as satisfied, so constraint_fit only penalizes once an
		// evaluator starts failing chains.
		if len(ch.Constraints) > 0 {
			stats.constraintTotal++
			stats.constraintHits++
		}
	}

	scored := make(map[string]model.Scorecard, len(byAction))
	for action, s := range byAction {
		scored[action] = e.scorecard(s)
	}
	return scored
}

// scorecard derives the transparent scorecard from one action's aggregates
func (e *Engine) scorecard(s *actionStats) model.Scorecard {
	support := len(s.contexts)

	causeCov := 0.0
	if s.causes > 0 {
		causeCov = float64(s.causesWithAction) / float64(s.causes)
	}

	total := s.totalActions
	if total < 1 {
		total = 1
	}
	outcomeStrength := float64(s.actionsWithOutcome) / float64(total)

	constraintFit := 1.0
	if s.constraintTotal > 0 {
		constraintFit = float64(s.constraintHits) / float64(s.constraintTotal)
	}

	recency := 0.0
	if s.latestTS != "" {
		recency = 1.0
	}

	debt := float64(s.debtNoOutcome+s.debtNoCause) / float64(total)

	w := e.weights
	score := w.W1*float64(support) +
		w.W2*causeCov +
		w.W3*outcomeStrength +
		w.W4*recency +
		w.W5*constraintFit -
		w.W6*debt

	contexts := make([]string, 0, len(s.contexts))
	for ctx := range s.contexts {
		contexts = append(contexts, ctx)
	}
	sort.Strings(contexts)

	samples := make([]model.SampleChain, 0, 5)
	for _, ch := range s.chains {
		if len(samples) == 5 {
			break
		}
		samples = append(samples, model.SampleChain{
			Context:   ch.Context,
			Cause:     ch.Cause,
			Action:    ch.Action,
			Outcome:   ch.Outcome,
			Timestamp: ch.Timestamp,
		})
	}

	return model.Scorecard{
		Score:           round(score, 4),
		Support:         support,
		CauseCoverage:   round(causeCov, 3),
		OutcomeStrength: round(outcomeStrength, 3),
		Recency:         recency,
		ConstraintFit:   round(constraintFit, 3),
		DebtPenalty:     round(debt, 3),
		Contexts:        contexts,
		SampleChains:    samples,
	}
}

// Rank orders actions by score descending. Ties break on outcome_strength,
// then constraint_fit, then cause_coverage (all descending), then support
// descending, then debt_penalty ascending; action text ascending is the
// final key so the ordering is total and reproducible.
func (e *Engine) Rank(scored map[string]model.Scorecard) []model.RankedAction {
	ranked := make([]model.RankedAction, 0, len(scored))
	for action, card := range scored {
		ranked = append(ranked, model.RankedAction{Action: action, Scorecard: card})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].Scorecard, ranked[j].Scorecard
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.OutcomeStrength != b.OutcomeStrength {
			return a.OutcomeStrength > b.OutcomeStrength
		}
		if a.ConstraintFit != b.ConstraintFit {
			return a.ConstraintFit > b.ConstraintFit
		}
		if a.CauseCoverage != b.CauseCoverage {
			return a.CauseCoverage > b.CauseCoverage
		}
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.DebtPenalty != b.DebtPenalty {
			return a.DebtPenalty < b.DebtPenalty
		}
		return ranked[i].Action < ranked[j].Action
	})

	return ranked
}

// PickUnified selects the top-ranked action plus up to three alternatives.
// Returns nil when no action was scored; the caller decides how to
// represent the degraded state.
func (e *Engine) PickUnified(scored map[string]model.Scorecard) *model.UnifiedDecision {
	if len(scored) == 0 {
		return nil
	}

	ranked := e.Rank(scored)
	top := ranked[0]

	alternatives := ranked[1:]
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}

	card := top.Scorecard
	return &model.UnifiedDecision{
		Action:       top.Action,
		Scorecard:    &card,
		Alternatives: alternatives,
	}
}

func round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
