package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a Generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiGenerator{client: client}, nil
}

// GenerateText implements Generator.
func (g *geminiGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	var temperature float32 = 0.4
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// ListModels implements Generator. Only models that support content
// generation are returned.
func (g *geminiGenerator) ListModels(ctx context.Context) ([]string, error) {
	var names []string

	page, err := g.client.Models.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	for {
		for _, model := range page.Items {
			if model == nil {
				continue
			}
			for _, action := range model.SupportedActions {
				if action == "generateContent" {
					names = append(names, model.Name)
					break
				}
			}
		}

		page, err = page.Next(ctx)
		if err == genai.ErrPageDone {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
	}

	return names, nil
}
