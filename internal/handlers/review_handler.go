package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sujitlop/Resume-reviewer/internal/models"
	"github.com/Sujitlop/Resume-reviewer/internal/services"
)

type ReviewHandler struct {
	reviewer    services.Reviewer
	limiter     *services.RateLimiter
	prompts     *services.PromptBuilder
	pdfParser   services.PDFParserService
	maxFileSize int64
	logger      *zap.Logger
}

func NewReviewHandler(
	reviewer services.Reviewer,
	limiter *services.RateLimiter,
	pdfParser services.PDFParserService,
	maxFileSize int64,
	logger *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		reviewer:    reviewer,
		limiter:     limiter,
		prompts:     services.NewPromptBuilder(),
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleReview handles POST /review and its POST /tailor alias.
func (h *ReviewHandler) HandleReview(c *fiber.Ctx) error {
	if !h.limiter.Allow(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Rate limit exceeded. Try again soon.",
		})
	}

	var req models.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(req.Resume) > models.MaxResumeLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume exceeds %d characters", models.MaxResumeLength),
		})
	}
	if len(req.JobDescription) > models.MaxJobDescriptionLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("job_description exceeds %d characters", models.MaxJobDescriptionLength),
		})
	}
	if len(req.RoleTitle) > models.MaxRoleTitleLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("role_title exceeds %d characters", models.MaxRoleTitleLength),
		})
	}

	return h.runReview(c, req.Resume, req.JobDescription, req.RoleTitle)
}

// HandleUploadReview handles POST /review/upload: a multipart PDF resume
// plus optional job_description and role_title form fields.
func (h *ReviewHandler) HandleUploadReview(c *fiber.Ctx) error {
	if !h.limiter.Allow(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Rate limit exceeded. Try again soon.",
		})
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Upload a PDF resume in the 'resume' field.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume must be a PDF file.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}

	resumeText, err := h.pdfParser.ExtractText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract text from the PDF.",
		})
	}

	resumeText = services.CleanText(resumeText)
	if len(resumeText) > models.MaxResumeLength {
		resumeText = resumeText[:models.MaxResumeLength]
	}

	return h.runReview(c, resumeText, c.FormValue("job_description"), c.FormValue("role_title"))
}

func (h *ReviewHandler) runReview(c *fiber.Ctx, resume, jobDescription, roleTitle string) error {
	resumeText := strings.TrimSpace(resume)
	jobDescription = strings.TrimSpace(jobDescription)
	roleTitle = strings.TrimSpace(roleTitle)

	if resumeText == "" && roleTitle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Provide a resume or a target role title.",
		})
	}

	reviewID := uuid.New().String()
	log := h.logger.With(zap.String("review_id", reviewID), zap.String("client_ip", c.IP()))

	// A missing resume switches to the outline prompt: the model is asked
	// for a fill-in outline and a missing-info list instead of feedback.
	if resumeText == "" {
		log.Info("generating resume outline", zap.String("role_title", roleTitle))

		review, err := h.reviewer.Review(c.Context(), h.prompts.BuildOutlinePrompt(roleTitle, jobDescription), false)
		if err != nil {
			return h.reviewError(c, log, err)
		}

		review.MatchLevel = "Low"
		return c.JSON(review)
	}

	log.Info("reviewing resume",
		zap.Int("resume_chars", len(resumeText)),
		zap.Bool("has_jd", jobDescription != ""))

	review, err := h.reviewer.Review(c.Context(), h.prompts.BuildReviewPrompt(resumeText, jobDescription, roleTitle), true)
	if err != nil {
		return h.reviewError(c, log, err)
	}

	return c.JSON(review)
}

func (h *ReviewHandler) reviewError(c *fiber.Ctx, log *zap.Logger, err error) error {
	log.Error("review failed", zap.Error(err))

	detail := "AI response could not be parsed. Please try again."
	if errors.Is(err, services.ErrNoModelAvailable) {
		detail = "No available model found. Set GEMINI_MODEL in the .env file."
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": detail,
	})
}
