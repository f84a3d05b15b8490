// Package chain groups an ordered stream of classified sentences into
// causal chains using cause-triggered segmentation.
package chain

import "github.com/avolkov/chainsage/internal/model"

// Build assembles causal chains from classified sentences in document
// order. A new chain starts exactly when a CAUSE sentence is seen; the
// previous chain is closed and emitted at that point. ACTION and OUTCOME
// sentences attach to the current chain, overwriting an earlier sentence of
// the same role. ACTION/OUTCOME sentences seen before any CAUSE are
// dropped: a chain never starts implicitly. Other roles do not participate
// in chain membership. Output order equals chain-start order.
func Build(sentences []model.ClassifiedSentence) []model.Chain {
	var chains []model.Chain
	var current model.Chain

	for _, s := range sentences {
		switch s.Role {
		case model.RoleCause:
			if current != nil {
				chains = append(chains, current)
			}
			current = model.Chain{model.RoleCause: s.Text}

		case model.RoleAction, model.RoleOutcome:
			if current != nil {
				current[s.Role] = s.Text
			}
		}
	}

	if current != nil {
		chains = append(chains, current)
	}

	return chains
}
