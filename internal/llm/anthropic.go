package llm

import (
	"context"
	"errors"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicBackend struct {
	client anthropicclient.Client
	model  string
}

func newAnthropicBackend(cfg Config) *anthropicBackend {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultAnthropicModel
	}

	return &anthropicBackend{
		client: anthropicclient.NewClient(opts...),
		model:  model,
	}
}

func (b *anthropicBackend) complete(ctx context.Context, systemPrompt, prompt string, opts CompletionOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(b.model),
		MaxTokens: maxTokens,
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(prompt)),
		},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		params.System = []anthropicclient.TextBlockParam{{Text: systemPrompt}}
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropicclient.Float(opts.Temperature)
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("empty response from model")
	}
	return sb.String(), nil
}
