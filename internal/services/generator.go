package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Sujitlop/Resume-reviewer/internal/config"
)

// Generator is the outbound text-generation backend. Implementations call a
// single named model with a prompt and can list the models the provider
// currently serves.
type Generator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// DefaultModelCandidates is the static fallback candidate list, highest
// preference first, used when no override is configured and live discovery
// fails.
var DefaultModelCandidates = []string{
	"models/gemini-1.5-flash-latest",
	"models/gemini-1.5-flash",
	"models/gemini-1.5-pro-latest",
	"gemini-1.5-flash-latest",
	"gemini-1.5-flash",
	"gemini-1.5-pro-latest",
}

// NewGenerator builds the generation backend selected by configuration.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiGenerator(ctx, cfg.APIKey)
	case "openai":
		return NewOpenAIGenerator(cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// ResolveCandidates returns the ordered candidate model list: the explicit
// configuration override when present, else the provider's live catalog,
// else the static default list.
func ResolveCandidates(ctx context.Context, cfg config.LLMConfig, gen Generator, log *zap.Logger) []string {
	if len(cfg.Models) > 0 {
		return cfg.Models
	}

	models, err := gen.ListModels(ctx)
	if err != nil {
		log.Warn("failed to fetch provider models", zap.Error(err))
	}
	if len(models) > 0 {
		return models
	}

	return DefaultModelCandidates
}
