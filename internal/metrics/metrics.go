// Package metrics computes descriptive coverage and debt statistics over a
// set of causal chains. All functions are pure and return map payloads so
// the orchestrator can surface them verbatim in the result.
package metrics

import "github.com/avolkov/chainsage/internal/model"

// DecisionCoverage reports how many chains carry an ACTION and an OUTCOME.
// An empty chain set returns an empty map: "no data" is distinct from zero
// coverage.
func DecisionCoverage(chains []model.Chain) map[string]interface{} {
	total := len(chains)
	if total == 0 {
		return map[string]interface{}{}
	}

	withAction := 0
	withOutcome := 0
	for _, c := range chains {
		if c.Has(model.RoleAction) {
			withAction++
		}
		if c.Has(model.RoleOutcome) {
			withOutcome++
		}
	}

	return map[string]interface{}{
		"total_chains":     total,
		"action_coverage":  float64(withAction) / float64(total),
		"outcome_coverage": float64(withOutcome) / float64(total),
	}
}

// AnalyzeChains buckets every chain by the presence of CAUSE, ACTION and
// OUTCOME and derives the decision debt: the fraction of chains lacking a
// completed cause→action→outcome narrative.
//
// The branch conditions below overlap: a chain with cause+action but no
// outcome satisfies both the action-only check and the cause-and-action
// check, so the cause_action_only bucket is unreachable in practice. The
// evaluation order is fixed (cause-only, action-only, cause-and-action,
// else broken) to reproduce the established bucket totals; do not reorder.
func AnalyzeChains(chains []model.Chain) map[string]interface{} {
	var broken, causeOnly, actionOnly, causeActionOnly, complete int

	for _, c := range chains {
		hasCause := c.Has(model.RoleCause)
		hasAction := c.Has(model.RoleAction)
		hasOutcome := c.Has(model.RoleOutcome)

		switch {
		case hasCause && hasAction && hasOutcome:
			complete++
		case hasCause && !hasAction:
			causeOnly++
			broken++
		case hasAction && !hasOutcome:
			actionOnly++
			broken++
		case hasCause && hasAction && !hasOutcome:
			causeActionOnly++
			broken++
		default:
			broken++
		}
	}

	total := len(chains)
	debt := 0.0
	if total > 0 {
		debt = float64(broken) / float64(total)
	}

	return map[string]interface{}{
		"broken_chains":     broken,
		"cause_only":        causeOnly,
		"action_only":       actionOnly,
		"cause_action_only": causeActionOnly,
		"complete":          complete,
		"decision_debt":     debt,
	}
}

// ChainCompleteness reports the fraction of chains holding all three of
// CAUSE, ACTION and OUTCOME. Empty input returns an empty map.
func ChainCompleteness(chains []model.Chain) map[string]interface{} {
	total := len(chains)
	if total == 0 {
		return map[string]interface{}{}
	}

	complete := 0
	for _, c := range chains {
		if c.Has(model.RoleCause) && c.Has(model.RoleAction) && c.Has(model.RoleOutcome) {
			complete++
		}
	}

	ratio := float64(complete) / float64(total)
	return map[string]interface{}{
		"complete_ratio":   ratio,
		"incomplete_ratio": 1 - ratio,
	}
}
