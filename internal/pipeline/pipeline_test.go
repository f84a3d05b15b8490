package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkov/chainsage/internal/model"
)

// stubSource is an in-memory sentence source for tests
type stubSource struct {
	records []model.SentenceRecord
	err     error
}

func (s *stubSource) Sentences(_ context.Context, contexts []string) ([]model.SentenceRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	selected := make(map[string]bool, len(contexts))
	for _, c := range contexts {
		selected[c] = true
	}
	var out []model.SentenceRecord
	for _, r := range s.records {
		if selected[r.Context] {
			out = append(out, r)
		}
	}
	return out, nil
}

// stubChains is an in-memory chain source for tests
type stubChains struct {
	records map[string][]model.ChainRecord
}

func (s *stubChains) ChainRecords(_ context.Context, contexts []string) (map[string][]model.ChainRecord, error) {
	return s.records, nil
}

func newTestPipeline(source SentenceSource, chains ChainSource) *Pipeline {
	return NewPipeline(model.DefaultConfig(), source, chains)
}

func TestRun_EmptyContextSelection(t *testing.T) {
	p := newTestPipeline(&stubSource{}, nil)

	_, err := p.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected error for empty context selection")
	}
	var perr *PipelineError
	if !errors.As(err, &perr) {
		t.Errorf("Expected PipelineError, got %T: %v", err, err)
	}
}

func TestRun_EmptySourceIsNotAnError(t *testing.T) {
	p := newTestPipeline(&stubSource{}, nil)

	result, err := p.Run(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected no error for empty source, got %v", err)
	}
	if result.TotalChains != 0 {
		t.Errorf("Expected total_chains=0, got %d", result.TotalChains)
	}
	if result.UnifiedDecision == nil || result.UnifiedDecision.Action != "No data available" {
		t.Errorf("Expected placeholder decision, got %+v", result.UnifiedDecision)
	}
	if result.ChainsByContext == nil || result.ActionRankings == nil || result.ScoringWeights == nil {
		t.Errorf("Expected structurally complete payload, got %+v", result)
	}
}

func TestRun_NoMatchingContexts(t *testing.T) {
	source := &stubSource{records: []model.SentenceRecord{
		{Context: "payments", Text: "The service failed because of a config error."},
	}}
	p := newTestPipeline(source, nil)

	// The source returns nothing for "ops", which must not be an error
	result, err := p.Run(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.TotalChains != 0 {
		t.Errorf("Expected total_chains=0, got %d", result.TotalChains)
	}
}

func TestRun_SourceErrorAbsorbed(t *testing.T) {
	p := newTestPipeline(&stubSource{err: errors.New("disk on fire")}, nil)

	result, err := p.Run(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected the source error to be absorbed, got %v", err)
	}
	if result.UnifiedDecision.Action != "No data available" {
		t.Errorf("Expected empty-data placeholder, got %+v", result.UnifiedDecision)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	source := &stubSource{records: []model.SentenceRecord{
		{Context: "ops", Text: "The service failed because of a config error."},
		{Context: "ops", Text: "Engineers restarted the affected service."},
		{Context: "ops", Text: "The service recovered within five minutes."},
	}}
	p := newTestPipeline(source, nil)

	result, err := p.Run(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.TotalChains != 1 {
		t.Fatalf("Expected 1 chain, got %d", result.TotalChains)
	}
	chains := result.ChainsByContext["ops"]
	if len(chains) != 1 {
		t.Fatalf("Expected 1 chain for ops, got %d", len(chains))
	}
	c := chains[0]
	if !c.Has(model.RoleCause) || !c.Has(model.RoleAction) || !c.Has(model.RoleOutcome) {
		t.Errorf("Expected complete chain, got %v", c)
	}

	if result.Metrics["action_coverage"].(float64) != 1.0 {
		t.Errorf("Expected action_coverage=1.0, got %v", result.Metrics["action_coverage"])
	}
	if result.Metrics["outcome_coverage"].(float64) != 1.0 {
		t.Errorf("Expected outcome_coverage=1.0, got %v", result.Metrics["outcome_coverage"])
	}
	if result.Debt["complete"].(int) != 1 || result.Debt["broken_chains"].(int) != 0 {
		t.Errorf("Unexpected debt: %v", result.Debt)
	}
	if result.Debt["decision_debt"].(float64) != 0.0 {
		t.Errorf("Expected decision_debt=0.0, got %v", result.Debt["decision_debt"])
	}

	u := result.UnifiedDecision
	if u == nil || u.Scorecard == nil {
		t.Fatalf("Expected a scored unified decision, got %+v", u)
	}
	if u.Action != "engineers restarted the affected service." {
		t.Errorf("Unexpected recommended action: %q", u.Action)
	}
	if len(result.ActionRankings) != 1 {
		t.Errorf("Expected 1 ranked action, got %v", result.ActionRankings)
	}
	if result.ScoringWeights["w1"] != 0.40 || result.ScoringWeights["w6"] != 0.25 {
		t.Errorf("Expected default weights in payload, got %v", result.ScoringWeights)
	}
}

func TestRun_MultiContextAggregation(t *testing.T) {
	source := &stubSource{records: []model.SentenceRecord{
		{Context: "ops", Text: "Checkout broke because of a bad deploy."},
		{Context: "ops", Text: "We rollback immediately."},
		{Context: "ops", Text: "Checkout recovered."},
		{Context: "payments", Text: "Latency rose because of connection churn."},
		{Context: "payments", Text: "We rollback immediately."},
		{Context: "payments", Text: "Latency recovered."},
	}}
	p := newTestPipeline(source, nil)

	result, err := p.Run(context.Background(), []string{"ops", "payments"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.TotalChains != 2 {
		t.Fatalf("Expected 2 chains, got %d", result.TotalChains)
	}

	card, ok := result.ActionRankings["we rollback immediately."]
	if !ok {
		t.Fatalf("Expected shared action across contexts, got %v", result.ActionRankings)
	}
	if card.Support != 2 {
		t.Errorf("Expected support 2, got %d", card.Support)
	}
}

func TestRun_ChainSourceMergedIntoScoring(t *testing.T) {
	source := &stubSource{records: []model.SentenceRecord{
		{Context: "ops", Text: "The database stalled because of lock contention."},
		{Context: "ops", Text: "We restarted the replica."},
	}}
	chains := &stubChains{records: map[string][]model.ChainRecord{
		"ops": {
			{"Root Cause": "lock contention", "Fix": "we restarted the replica.", "Result": "stalls gone", "Date": "2024-05-01"},
		},
	}}
	p := newTestPipeline(source, chains)

	result, err := p.Run(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	card, ok := result.ActionRankings["we restarted the replica."]
	if !ok {
		t.Fatalf("Expected merged action, got %v", result.ActionRankings)
	}
	// one occurrence from the built chain, one from the external record
	if len(card.SampleChains) != 2 {
		t.Errorf("Expected 2 occurrences, got %+v", card)
	}
	if card.Recency != 1.0 {
		t.Errorf("Expected recency from external record timestamp, got %v", card.Recency)
	}
}

func TestRun_NoActionsYieldsDiagnosticPlaceholder(t *testing.T) {
	source := &stubSource{records: []model.SentenceRecord{
		{Context: "ops", Text: "The pager fired because of a threshold breach."},
		{Context: "ops", Text: "Everyone watched the dashboards quietly."},
	}}
	p := newTestPipeline(source, nil)

	result, err := p.Run(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.TotalChains != 1 {
		t.Fatalf("Expected 1 cause-only chain, got %d", result.TotalChains)
	}

	u := result.UnifiedDecision
	if u.Action != "No actionable recommendation" {
		t.Fatalf("Expected placeholder, got %q", u.Action)
	}
	if u.Diagnostics["chains_seen"].(int) != 1 {
		t.Errorf("Expected chains_seen=1, got %v", u.Diagnostics)
	}
	if u.Diagnostics["chains_with_action"].(int) != 0 {
		t.Errorf("Expected chains_with_action=0, got %v", u.Diagnostics)
	}
	if len(result.ActionRankings) != 0 {
		t.Errorf("Expected no rankings, got %v", result.ActionRankings)
	}
}
