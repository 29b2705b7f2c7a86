package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Sujitlop/Resume-reviewer/internal/models"
	"github.com/Sujitlop/Resume-reviewer/internal/services"
)

type HealthHandler struct {
	reviewer  services.Reviewer
	generator services.Generator
	logger    *zap.Logger
}

func NewHealthHandler(reviewer services.Reviewer, generator services.Generator, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		reviewer:  reviewer,
		generator: generator,
		logger:    logger,
	}
}

// HandleHealth handles GET /health: reports the model currently in use (or
// the first candidate before any review has succeeded) and the full
// candidate list.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	candidates := h.reviewer.Candidates()

	model := h.reviewer.ActiveModel()
	if model == "" && len(candidates) > 0 {
		model = candidates[0]
	}

	return c.JSON(models.HealthResponse{
		Status:     "healthy",
		Model:      model,
		Candidates: candidates,
	})
}

// HandleModels handles GET /models: the provider's live catalog, falling
// back to the static candidate list when the query fails.
func (h *HealthHandler) HandleModels(c *fiber.Ctx) error {
	available, err := h.generator.ListModels(c.Context())
	if err != nil {
		h.logger.Warn("failed to fetch provider models", zap.Error(err))
	}
	if len(available) == 0 {
		available = h.reviewer.Candidates()
	}

	return c.JSON(models.ModelsResponse{Models: available})
}
