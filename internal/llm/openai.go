package llm

import (
	"context"
	"errors"
	"strings"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

// openAIBackend talks to any OpenAI-compatible chat-completions endpoint,
// including Mistral's hosted API.
type openAIBackend struct {
	client openaiclient.Client
	model  string
}

func newOpenAIBackend(cfg Config) *openAIBackend {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}

	return &openAIBackend{
		client: openaiclient.NewClient(opts...),
		model:  model,
	}
}

func (b *openAIBackend) complete(ctx context.Context, systemPrompt, prompt string, opts CompletionOptions) (string, error) {
	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, openaiclient.SystemMessage(systemPrompt))
	}
	messages = append(messages, openaiclient.UserMessage(prompt))

	params := openaiclient.ChatCompletionNewParams{
		Model:    openaiclient.ChatModel(b.model),
		Messages: messages,
	}
	if opts.Temperature > 0 {
		params.Temperature = openaiclient.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openaiclient.Int(opts.MaxTokens)
	}

	completion, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.New("empty response from model")
	}
	return content, nil
}
