package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/Sujitlop/Resume-reviewer/internal/config"
	"github.com/Sujitlop/Resume-reviewer/internal/handlers"
	"github.com/Sujitlop/Resume-reviewer/internal/logger"
	"github.com/Sujitlop/Resume-reviewer/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Generation backend
	generator, err := services.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		zlog.Fatal("failed to initialize generator", zap.Error(err))
	}

	candidates := services.ResolveCandidates(ctx, cfg.LLM, generator, zlog)
	zlog.Info("candidate models resolved",
		zap.String("provider", cfg.LLM.Provider),
		zap.Strings("candidates", candidates))

	reviewer := services.NewReviewer(generator, candidates, cfg.LLM.MaxRetries, zlog)
	limiter := services.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	pdfParser := services.NewPDFParserService()

	// Handlers
	reviewHandler := handlers.NewReviewHandler(reviewer, limiter, pdfParser, cfg.Upload.MaxFileSize, zlog)
	healthHandler := handlers.NewHealthHandler(reviewer, generator, zlog)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Reviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://localhost:5173",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	app.Get("/health", healthHandler.HandleHealth)
	app.Get("/models", healthHandler.HandleModels)
	app.Post("/review", reviewHandler.HandleReview)
	app.Post("/tailor", reviewHandler.HandleReview)
	app.Post("/review/upload", reviewHandler.HandleUploadReview)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
