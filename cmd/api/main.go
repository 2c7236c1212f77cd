package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/smart-interviewer-api/internal/config"
	"github.com/noah-isme/smart-interviewer-api/internal/database"
	"github.com/noah-isme/smart-interviewer-api/internal/handler"
	"github.com/noah-isme/smart-interviewer-api/internal/middleware"
	"github.com/noah-isme/smart-interviewer-api/internal/router"
	"github.com/noah-isme/smart-interviewer-api/internal/service"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	providerService := service.NewProviderService(service.ProviderServiceOptions{
		Transport: ai.Options{
			Timeout: cfg.AITimeout,
			Retry:   ai.RetryPolicy{MaxRetries: uint64(max(cfg.AIMaxRetries, 0))},
		},
		BaseURLs: cfg.ProviderBaseURLs,
	}, logger)

	if providerService.AutoConfigure(context.Background(), cfg.DefaultProvider, cfg.APIKeyFor(cfg.DefaultProvider), cfg.DefaultModel) {
		logger.Info().Str("provider", providerService.CurrentProvider()).Msg("AI provider configured from environment")
	} else {
		logger.Warn().Str("provider", cfg.DefaultProvider).Msg("no usable API key for default provider; serving fallback results until configured")
	}

	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		limiterStorage = middleware.NewRedisStorage(redisClient)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	questionService := service.NewQuestionService(providerService, logger)
	answerService := service.NewAnswerService(providerService, logger)
	reportService := service.NewReportService(providerService, logger)

	providerHandler := handler.NewProviderHandler(providerService, validate, logger)
	interviewHandler := handler.NewInterviewHandler(questionService, answerService, reportService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    2 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		RateLimit:    middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow, limiterStorage),
	})
	router.Register(app, cfg, router.Dependencies{
		ProviderHandler:  providerHandler,
		InterviewHandler: interviewHandler,
		ProviderStatus:   providerService,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
