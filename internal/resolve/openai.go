package resolve

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"atlas/internal/intent"
)

// OpenAIProvider resolves intents through the OpenAI chat completions API.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	enabled bool
}

// NewOpenAI builds the provider. Without an API key it stays configured
// but reports "not applicable" on every call, so the chain skips it.
// A non-nil httpClient (e.g. a SOCKS client) overrides transport.
func NewOpenAI(apiKey, baseURL, model string, httpClient *http.Client) *OpenAIProvider {
	p := &OpenAIProvider{model: model}
	if apiKey == "" {
		return p
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	p.client = openai.NewClient(opts...)
	p.enabled = true
	return p
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Resolve(ctx context.Context, text string, cc intent.Context) (*intent.Intent, error) {
	if !p.enabled {
		return nil, nil
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(cc)),
			openai.UserMessage(text),
		},
		Model: openai.ChatModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty message content")
	}

	return ParseIntent(content)
}
