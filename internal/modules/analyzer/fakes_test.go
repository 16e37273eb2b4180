package analyzer

import (
	"context"

	"github.com/plenumwatch/core/internal/llm"
)

// stubLLM returns canned results.
type stubLLM struct {
	extraction *llm.TopicExtraction
	comparison *llm.Comparison
	err        error
}

func (s *stubLLM) AnalyzeTopics(ctx context.Context, text string) (*llm.TopicExtraction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.extraction, nil
}

func (s *stubLLM) CompareTopics(ctx context.Context, first, second string) (*llm.Comparison, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comparison, nil
}

func (s *stubLLM) Complete(ctx context.Context, systemPrompt, prompt string, opts llm.CompletionOptions) (string, error) {
	return "", s.err
}
