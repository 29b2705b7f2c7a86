package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Sujitlop/Resume-reviewer/internal/models"
)

// Terminal errors after every attempt over every candidate has failed.
var (
	ErrNoModelAvailable = errors.New("no available model found")
	ErrUnparsableOutput = errors.New("model output could not be parsed")
)

// Reviewer turns a prompt into a normalized review by trying candidate
// models in preference order with bounded retries.
type Reviewer interface {
	Review(ctx context.Context, prompt string, requireContent bool) (*models.ReviewResponse, error)
	ActiveModel() string
	Candidates() []string
}

type reviewerService struct {
	gen        Generator
	candidates []string
	maxRetries int
	logger     *zap.Logger

	// activeModel records the last candidate that produced a valid review.
	activeModel atomic.Value
}

func NewReviewer(gen Generator, candidates []string, maxRetries int, logger *zap.Logger) Reviewer {
	return &reviewerService{
		gen:        gen,
		candidates: candidates,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Review implements Reviewer. Each attempt is one full pass over the
// candidate list; the first candidate whose output survives extraction and
// normalization wins. Candidates the provider reports as unavailable are
// skipped without consuming the retry budget. A failed attempt appends a
// stricter JSON-only instruction to the prompt before the next pass.
func (r *reviewerService) Review(ctx context.Context, prompt string, requireContent bool) (*models.ReviewResponse, error) {
	attempts := r.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		for _, model := range r.candidates {
			raw, err := r.gen.GenerateText(ctx, model, prompt)
			if err != nil {
				lastErr = err
				if isModelUnavailable(err) {
					r.logger.Warn("model unavailable",
						zap.String("model", model),
						zap.Error(err))
					continue
				}
				r.logger.Warn("generation failed",
					zap.String("model", model),
					zap.Int("attempt", attempt),
					zap.Int("attempts", attempts),
					zap.Error(err))
				continue
			}

			review, err := NormalizeReview([]byte(ExtractJSON(raw)), requireContent)
			if err != nil {
				lastErr = err
				r.logger.Warn("output parsing failed",
					zap.String("model", model),
					zap.Int("attempt", attempt),
					zap.Int("attempts", attempts),
					zap.Error(err))
				continue
			}

			r.activeModel.Store(model)
			return review, nil
		}

		if attempt < attempts {
			prompt += StrictJSONInstruction
		}
	}

	if lastErr != nil && isModelUnavailable(lastErr) {
		return nil, ErrNoModelAvailable
	}
	return nil, ErrUnparsableOutput
}

// ActiveModel implements Reviewer. Empty until a review has succeeded.
func (r *reviewerService) ActiveModel() string {
	if model, ok := r.activeModel.Load().(string); ok {
		return model
	}
	return ""
}

// Candidates implements Reviewer.
func (r *reviewerService) Candidates() []string {
	return r.candidates
}

// isModelUnavailable reports whether the provider rejected the model
// identifier itself, as opposed to failing on the request.
func isModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "not found") || strings.Contains(msg, "not supported")
}
