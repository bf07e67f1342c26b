package advisor

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// geminiGenerator talks to the Gemini API. The client is created lazily on
// first use so constructing an Advisor never needs a context or network.
type geminiGenerator struct {
	apiKey string
	model  string

	once   sync.Once
	client *genai.Client
	initErr error
}

func (g *geminiGenerator) Generate(ctx context.Context, systemInstruction, query string) (string, error) {
	g.once.Do(func() {
		g.client, g.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if g.initErr != nil {
		return "", fmt.Errorf("create gemini client: %w", g.initErr)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(query), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
