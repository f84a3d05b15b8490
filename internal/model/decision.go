package model

// Scorecard is the transparent scoring breakdown for one candidate action.
// Every field is a direct formula over the action's aggregates so the
// recommendation stays fully explainable.
type Scorecard struct {
	Score           float64       `json:"score"`
	Support         int           `json:"support"`          // distinct supporting contexts
	CauseCoverage   float64       `json:"cause_coverage"`   // cause-led occurrences / occurrences with any cause
	OutcomeStrength float64       `json:"outcome_strength"` // occurrences with outcome / total occurrences
	Recency         float64       `json:"recency"`          // 1.0 if any timestamp seen, else 0.0
	ConstraintFit   float64       `json:"constraint_fit"`   // satisfied / observed, 1.0 when none observed
	DebtPenalty     float64       `json:"debt_penalty"`     // incomplete occurrences / total occurrences
	Contexts        []string      `json:"contexts"`
	SampleChains    []SampleChain `json:"sample_chains"`
}

// SampleChain is one evidence example attached to a scorecard
type SampleChain struct {
	Context   string `json:"context"`
	Cause     string `json:"cause,omitempty"`
	Action    string `json:"action"`
	Outcome   string `json:"outcome,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// RankedAction pairs an action with its scorecard in rank order
type RankedAction struct {
	Action    string    `json:"action"`
	Scorecard Scorecard `json:"scorecard"`
}

// UnifiedDecision is the single top-ranked action with its rationale and up
// to three ranked alternatives. When no action could be extracted, Action
// holds a placeholder label and Diagnostics explains why (observed field
// names, chain counts) instead of failing the run.
type UnifiedDecision struct {
	Action       string                 `json:"action"`
	Scorecard    *Scorecard             `json:"scorecard,omitempty"`
	Diagnostics  map[string]interface{} `json:"diagnostics,omitempty"`
	Alternatives []RankedAction         `json:"alternatives"`
}

// DecisionResult is the complete payload produced by one pipeline run.
// This is the entire contract surfaced to any presentation layer.
type DecisionResult struct {
	ChainsByContext map[string][]Chain     `json:"chains_by_context"`
	Metrics         map[string]interface{} `json:"metrics"`
	Debt            map[string]interface{} `json:"debt"`
	Completeness    map[string]interface{} `json:"completeness"`
	TotalChains     int                    `json:"total_chains"`
	UnifiedDecision *UnifiedDecision       `json:"unified_decision"`
	ActionRankings  map[string]Scorecard   `json:"action_rankings"`
	ScoringWeights  map[string]float64     `json:"scoring_weights"`

	// Brief is the optional LLM-generated narrative. It is produced after
	// scoring and is never an input to any score.
	Brief *DecisionBrief `json:"brief,omitempty"`
}

// DecisionBrief contains an optional LLM-generated narrative of the result
type DecisionBrief struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	BriefMD  string   `json:"brief_md,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
