package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Sujitlop/Resume-reviewer/internal/models"
	"github.com/Sujitlop/Resume-reviewer/internal/services"
)

type stubReviewer struct {
	review      *models.ReviewResponse
	err         error
	calls       int
	lastPrompt  string
	lastRequire bool
	active      string
	candidates  []string
}

func (s *stubReviewer) Review(_ context.Context, prompt string, requireContent bool) (*models.ReviewResponse, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastRequire = requireContent
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewer) ActiveModel() string  { return s.active }
func (s *stubReviewer) Candidates() []string { return s.candidates }

func emptySections() map[string]models.SectionFeedback {
	sections := make(map[string]models.SectionFeedback)
	for _, name := range models.SectionNames {
		sections[name] = models.SectionFeedback{}
	}
	return sections
}

func newTestApp(reviewer services.Reviewer, limiter *services.RateLimiter) *fiber.App {
	app := fiber.New()
	h := NewReviewHandler(reviewer, limiter, services.NewPDFParserService(), 1024, zap.NewNop())
	app.Post("/review", h.HandleReview)
	app.Post("/tailor", h.HandleReview)
	app.Post("/review/upload", h.HandleUploadReview)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestHandleReviewRejectsEmptyInput(t *testing.T) {
	reviewer := &stubReviewer{}
	app := newTestApp(reviewer, services.NewRateLimiter(30, time.Minute))

	resp := postJSON(t, app, "/review", `{"resume": "", "role_title": ""}`)

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if reviewer.calls != 0 {
		t.Fatalf("no model call should be attempted, got %d", reviewer.calls)
	}
}

func TestHandleReviewOutlinePath(t *testing.T) {
	reviewer := &stubReviewer{
		review: &models.ReviewResponse{
			Overview:      "Send a resume to get a full review.",
			MatchLevel:    "Medium",
			Sections:      emptySections(),
			TopFixes:      []string{"Gather your work history"},
			ResumeOutline: []string{"Header", "Experience", "Skills"},
		},
	}
	app := newTestApp(reviewer, services.NewRateLimiter(30, time.Minute))

	resp := postJSON(t, app, "/review", `{"resume": "", "role_title": "Backend Engineer"}`)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if reviewer.lastRequire {
		t.Fatal("outline path should not require content")
	}
	if !strings.Contains(reviewer.lastPrompt, "only provided a role title") {
		t.Fatal("expected the outline prompt variant")
	}
	if !strings.Contains(reviewer.lastPrompt, "Backend Engineer") {
		t.Fatal("prompt should carry the role title")
	}

	var review models.ReviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&review); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if review.MatchLevel != "Low" {
		t.Fatalf("outline responses force match_level Low, got %q", review.MatchLevel)
	}
	if len(review.ResumeOutline) == 0 {
		t.Fatal("expected a non-empty resume outline")
	}
}

func TestHandleReviewFullPath(t *testing.T) {
	reviewer := &stubReviewer{
		review: &models.ReviewResponse{
			Overview:   "Strong resume",
			MatchLevel: "High",
			Sections:   emptySections(),
			TopFixes:   []string{"Quantify impact"},
		},
	}
	app := newTestApp(reviewer, services.NewRateLimiter(30, time.Minute))

	resp := postJSON(t, app, "/tailor", `{"resume": "I build Go services.", "role_title": "Backend Engineer"}`)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !reviewer.lastRequire {
		t.Fatal("full review path should require content")
	}
	if !strings.Contains(reviewer.lastPrompt, "I build Go services.") {
		t.Fatal("prompt should carry the resume text")
	}
}

func TestHandleReviewFieldTooLong(t *testing.T) {
	reviewer := &stubReviewer{}
	app := newTestApp(reviewer, services.NewRateLimiter(30, time.Minute))

	body := fmt.Sprintf(`{"resume": %q}`, strings.Repeat("x", models.MaxResumeLength+1))
	resp := postJSON(t, app, "/review", body)

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if reviewer.calls != 0 {
		t.Fatal("no model call should be attempted for oversized input")
	}
}

func TestHandleReviewRateLimited(t *testing.T) {
	reviewer := &stubReviewer{
		review: &models.ReviewResponse{
			Overview:   "ok",
			MatchLevel: "High",
			Sections:   emptySections(),
			TopFixes:   []string{"fix"},
		},
	}
	app := newTestApp(reviewer, services.NewRateLimiter(1, time.Minute))

	body := `{"resume": "text", "role_title": "Engineer"}`

	if resp := postJSON(t, app, "/review", body); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first request should pass, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/review", body); resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("second request should be throttled, got %d", resp.StatusCode)
	}
}

func TestHandleReviewNoModelAvailable(t *testing.T) {
	reviewer := &stubReviewer{err: services.ErrNoModelAvailable}
	app := newTestApp(reviewer, services.NewRateLimiter(30, time.Minute))

	resp := postJSON(t, app, "/review", `{"resume": "text", "role_title": "Engineer"}`)

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "No available model") {
		t.Fatalf("error should name the availability cause, got %s", body)
	}
}

func TestHandleReviewUnparsableOutput(t *testing.T) {
	reviewer := &stubReviewer{err: services.ErrUnparsableOutput}
	app := newTestApp(reviewer, services.NewRateLimiter(30, time.Minute))

	resp := postJSON(t, app, "/review", `{"resume": "text", "role_title": "Engineer"}`)

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "could not be parsed") {
		t.Fatalf("error should name the parse cause, got %s", body)
	}
}

func TestHandleUploadReviewMissingFile(t *testing.T) {
	reviewer := &stubReviewer{}
	app := newTestApp(reviewer, services.NewRateLimiter(30, time.Minute))

	req := httptest.NewRequest(http.MethodPost, "/review/upload", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if reviewer.calls != 0 {
		t.Fatal("no model call should be attempted without a file")
	}
}
