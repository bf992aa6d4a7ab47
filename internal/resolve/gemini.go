package resolve

import (
	"context"
	"fmt"
	log "log/slog"

	"google.golang.org/genai"

	"atlas/internal/intent"
)

// GeminiProvider resolves intents through the Google Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGemini builds the provider. Without an API key (or if the client
// cannot be constructed) it stays unavailable and the chain skips it.
func NewGemini(apiKey, model string) *GeminiProvider {
	p := &GeminiProvider{model: model}
	if apiKey == "" {
		return p
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Warn("gemini client init failed, provider disabled", "err", err)
		return p
	}
	p.client = client
	return p
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Resolve(ctx context.Context, text string, cc intent.Context) (*intent.Intent, error) {
	if p.client == nil {
		return nil, nil
	}

	prompt := systemPrompt(cc) + "\n\nUSER INPUT: \"" + text + "\""
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty model response")
	}

	return ParseIntent(raw)
}
