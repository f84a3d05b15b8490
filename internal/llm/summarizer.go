package llm

import (
	"context"
	"fmt"

	"github.com/avolkov/chainsage/internal/model"
)

// Summarizer wraps a provider and produces model.DecisionBrief values
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider. A
// configuration with no provider yields a disabled summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// NewSummarizerWithProvider wires an explicit provider; used by tests
func NewSummarizerWithProvider(provider Provider, config Config) *Summarizer {
	return &Summarizer{provider: provider, config: config}
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateBrief narrates a decision result. Any provider failure is
// returned to the caller; the result itself is never modified here.
func (s *Summarizer) GenerateBrief(ctx context.Context, result *model.DecisionResult) (*model.DecisionBrief, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Brief(ctx, BriefRequest{
		Result:    result,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate brief: %w", err)
	}

	return &model.DecisionBrief{
		Enabled:  true,
		Provider: s.provider.Name(),
		Model:    resp.Model,
		BriefMD:  resp.BriefMD,
		Warnings: resp.Warnings,
	}, nil
}
