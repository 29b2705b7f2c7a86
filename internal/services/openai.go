package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openaiGenerator struct {
	client *openai.Client
}

// NewOpenAIGenerator creates a Generator backed by the OpenAI chat API.
func NewOpenAIGenerator(apiKey string) Generator {
	return &openaiGenerator{client: openai.NewClient(apiKey)}
}

// GenerateText implements Generator.
func (o *openaiGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// ListModels implements Generator.
func (o *openaiGenerator) ListModels(ctx context.Context) ([]string, error) {
	list, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var names []string
	for _, model := range list.Models {
		names = append(names, model.ID)
	}

	return names, nil
}
