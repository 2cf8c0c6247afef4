package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emlakpress/contentd/internal/ai"
	"github.com/emlakpress/contentd/internal/api"
	"github.com/emlakpress/contentd/internal/archive"
	"github.com/emlakpress/contentd/internal/audit"
	"github.com/emlakpress/contentd/internal/config"
	"github.com/emlakpress/contentd/internal/logger"
	"github.com/emlakpress/contentd/internal/middleware"
	"github.com/emlakpress/contentd/internal/pipeline"
	"github.com/emlakpress/contentd/internal/review"
	"github.com/emlakpress/contentd/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("starting contentd")

	contentStore, err := store.NewFileStore(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize content store")
	}

	// Audit events go to a Redis stream when one is reachable; otherwise the
	// pipeline runs without auditing rather than refusing to start.
	var sink audit.Sink = audit.NopSink{}
	redisSink, err := audit.NewRedisSink(cfg.RedisURL, cfg.AuditStream, int64(cfg.AuditStreamCap))
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, audit events disabled")
	} else {
		sink = redisSink
		defer func() {
			if err := redisSink.Close(); err != nil {
				log.Error().Err(err).Msg("error closing Redis client")
			}
		}()
	}

	var archiver archive.Archiver = archive.NopArchiver{}
	if cfg.R2Endpoint != "" && cfg.R2AccessKey != "" {
		r2, err := archive.NewR2Archiver(context.Background(), archive.Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			log.Warn().Err(err).Msg("R2 unavailable, version snapshots disabled")
		} else {
			archiver = r2
		}
	}

	generator := ai.NewClient(
		ai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.ProviderTimeout),
		ai.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ProviderTimeout),
	)

	pipe := pipeline.New(generator, contentStore, sink)
	workflow := review.NewWorkflow(contentStore, sink, archiver)
	handlers := api.NewHandlers(pipe, workflow, contentStore)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())

	api.SetupRoutes(app, handlers, cfg.AdminAPIKey)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
