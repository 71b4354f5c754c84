package analyzer

import (
	"context"
	"fmt"

	"aurora_leads_backend/platform/config"

	"google.golang.org/genai"
)

// geminiCompleter adapts the Gemini API to the Completer interface.
type geminiCompleter struct {
	client *genai.Client
	model  string
}

func newGeminiCompleter(ctx context.Context, cfg config.AIConfig) (*geminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzer: gemini client: %w", err)
	}

	return &geminiCompleter{
		client: client,
		model:  cfg.GetGeminiModel(),
	}, nil
}

func (g *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini api error: empty response")
	}

	return text, nil
}
