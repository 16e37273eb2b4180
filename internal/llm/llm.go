// Package llm wraps the hosted model API behind a text-in/JSON-out client.
package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// TopicExtraction is the structured result of per-item topic analysis.
type TopicExtraction struct {
	Topics    []string `json:"topics"`
	Sentiment string   `json:"sentiment"`
	Keywords  []string `json:"keywords"`
	Summary   string   `json:"summary"`
}

// Comparison is the structured result of comparing two texts.
type Comparison struct {
	CommonTopics   []string `json:"common_topics"`
	UniqueToFirst  []string `json:"unique_to_text1"`
	UniqueToSecond []string `json:"unique_to_text2"`
	Summary        string   `json:"summary"`
}

// CompletionOptions tune a single model call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int64
}

// Client is the narrow surface services depend on. AnalyzeTopics and
// CompareTopics never fail: transport errors and malformed model output
// degrade to a neutral fallback result, as the callers only ever log such
// failures anyway. Complete surfaces errors to the caller.
type Client interface {
	AnalyzeTopics(ctx context.Context, text string) (*TopicExtraction, error)
	CompareTopics(ctx context.Context, first, second string) (*Comparison, error)
	Complete(ctx context.Context, systemPrompt, prompt string, opts CompletionOptions) (string, error)
}

const analyzeSystemPrompt = `You are an expert political analyst. Analyze the following text and identify the main political topics,
sentiment, and key political entities mentioned. Format your response as JSON with the following structure:
{
    "topics": ["topic1", "topic2", ...],
    "sentiment": "positive|negative|neutral",
    "keywords": ["keyword1", "keyword2", ...],
    "summary": "A brief summary of the content"
}
Only respond with the JSON, no other text.`

const compareSystemPrompt = `You are an expert political analyst. Compare the following two texts and identify the similarities and differences
in the political topics discussed. Format your response as JSON with the following structure:
{
    "common_topics": ["topic1", "topic2", ...],
    "unique_to_text1": ["topic1", "topic2", ...],
    "unique_to_text2": ["topic1", "topic2", ...],
    "summary": "A brief summary of the comparison"
}
Only respond with the JSON, no other text.`

// backend executes a single chat completion against one provider.
type backend interface {
	complete(ctx context.Context, systemPrompt, prompt string, opts CompletionOptions) (string, error)
}

type client struct {
	backend backend
	logger  *zap.Logger
}

func (c *client) AnalyzeTopics(ctx context.Context, text string) (*TopicExtraction, error) {
	raw, err := c.backend.complete(ctx, analyzeSystemPrompt, text, CompletionOptions{
		Temperature: 0.1,
		MaxTokens:   500,
	})
	if err != nil {
		c.logger.Error("topic extraction call failed", zap.Error(err))
		return fallbackExtraction("Error analyzing content"), nil
	}

	var result TopicExtraction
	if err := UnmarshalModelJSON(raw, &result); err != nil {
		c.logger.Error("topic extraction returned unparseable JSON",
			zap.Error(err), zap.String("response", raw))
		return fallbackExtraction("Failed to analyze content"), nil
	}
	result.Sentiment = NormalizeSentiment(result.Sentiment)
	return &result, nil
}

func (c *client) CompareTopics(ctx context.Context, first, second string) (*Comparison, error) {
	prompt := "TEXT 1:\n" + first + "\n\nTEXT 2:\n" + second
	raw, err := c.backend.complete(ctx, compareSystemPrompt, prompt, CompletionOptions{
		Temperature: 0.1,
		MaxTokens:   500,
	})
	if err != nil {
		c.logger.Error("comparison call failed", zap.Error(err))
		return fallbackComparison("Error comparing content"), nil
	}

	var result Comparison
	if err := UnmarshalModelJSON(raw, &result); err != nil {
		c.logger.Error("comparison returned unparseable JSON",
			zap.Error(err), zap.String("response", raw))
		return fallbackComparison("Failed to compare content"), nil
	}
	return &result, nil
}

func (c *client) Complete(ctx context.Context, systemPrompt, prompt string, opts CompletionOptions) (string, error) {
	return c.backend.complete(ctx, systemPrompt, prompt, opts)
}

func fallbackExtraction(summary string) *TopicExtraction {
	return &TopicExtraction{
		Topics:    []string{},
		Sentiment: SentimentNeutral,
		Keywords:  []string{},
		Summary:   summary,
	}
}

func fallbackComparison(summary string) *Comparison {
	return &Comparison{
		CommonTopics:   []string{},
		UniqueToFirst:  []string{},
		UniqueToSecond: []string{},
		Summary:        summary,
	}
}

// Recognized sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

// NormalizeSentiment maps a model-returned sentiment label onto the
// recognized set, defaulting to neutral for anything else.
func NormalizeSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	case SentimentMixed:
		return SentimentMixed
	default:
		return SentimentNeutral
	}
}
