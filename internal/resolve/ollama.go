package resolve

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	oai "github.com/sashabaranov/go-openai"

	"atlas/internal/intent"
)

// OllamaProvider resolves intents against a local Ollama instance through
// its OpenAI-compatible endpoint, so the same chat-completion client works
// with the base URL swapped.
type OllamaProvider struct {
	client *oai.Client
	model  string
}

// NewOllama builds the provider. An empty base URL disables it. Ollama
// ignores the API key, but the client requires one to be set.
func NewOllama(baseURL, model string, httpClient *http.Client) *OllamaProvider {
	p := &OllamaProvider{model: model}
	if baseURL == "" {
		return p
	}

	cfg := oai.DefaultConfig("ollama")
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	p.client = oai.NewClientWithConfig(cfg)
	return p
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Resolve(ctx context.Context, text string, cc intent.Context) (*intent.Intent, error) {
	if p.client == nil {
		return nil, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, oai.ChatCompletionRequest{
		Model: p.model,
		Messages: []oai.ChatCompletionMessage{
			{Role: oai.ChatMessageRoleSystem, Content: systemPrompt(cc)},
			{Role: oai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ollama completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return ParseIntent(resp.Choices[0].Message.Content)
}
