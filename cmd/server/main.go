package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/config"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/db"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/embedding"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/handler"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/metrics"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/middleware"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/ranking"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/repository"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/router"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/service"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/tracing"
	"github.com/LKalra2094/Claude-Projects/youtube-assistant/internal/youtube"
)

const (
	serviceName = "youtube-assistant"
	version     = "1.0.0"
)

func main() {
	cfg, errs := config.Load(os.Getenv("CONFIG_FILE"))
	if cfg != nil {
		middleware.InitLogger(cfg.LogLevel, serviceName)
	} else {
		middleware.InitLogger("info", serviceName)
	}
	log := middleware.Logger
	if len(errs) > 0 {
		for _, err := range errs {
			log.Error().Err(err).Msg("invalid configuration")
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	if err := db.Migrate(cfg.DatabaseURL, log); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	metrics.Init(pool)

	cache := service.NewCacheService(cfg.RedisURL, log)
	defer cache.Close()

	var (
		model     embedding.TextEmbedder
		modelID   string
		modelPing handler.Pinger
	)
	if cfg.EmbeddingURL != "" {
		model = embedding.NewLazy(embedding.RemoteLoader(cfg.EmbeddingURL, cfg.EmbeddingModel, cfg.EmbeddingTimeout), true, log)
		modelID = cfg.EmbeddingModel
		modelPing = embedding.NewRemoteEmbedder(cfg.EmbeddingURL, cfg.EmbeddingModel, cfg.EmbeddingTimeout)
	} else {
		log.Warn().Msg("EMBEDDING_URL not set, using the local hashing embedder")
		model = embedding.NewLazy(func(context.Context) (embedding.TextEmbedder, error) {
			return embedding.NewHashingEmbedder(0), nil
		}, true, log)
		modelID = "hashing"
	}
	embedder := embedding.NewCachedEmbedder(model, cache, modelID, log)

	engine, err := ranking.NewEngine(embedder, ranking.WithWeights(cfg.Weights), ranking.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid ranking weights")
	}

	queries := repository.NewQueryRepo(pool)
	feedback := repository.NewFeedbackRepo(pool)
	clicks := repository.NewClickRepo(pool)
	quotaLog := repository.NewQuotaRepo(pool)

	events := service.NewEventWorker(queries, 5*time.Second, log)
	go events.Start(ctx)

	retention := service.NewRetentionJob(map[string]service.Pruner{
		"query_history": queries,
		"feedback":      feedback,
		"click_events":  clicks,
		"quota_log":     quotaLog,
	}, cfg.RetentionDays, log)
	if err := retention.Schedule(cfg.RetentionCron); err != nil {
		log.Fatal().Err(err).Msg("invalid retention schedule")
	}
	retention.Start()

	quota := service.NewQuotaService(quotaLog)
	catalog := youtube.NewClient(cfg.YouTubeAPIKey, cfg.YouTubeBaseURL, 0)
	search := service.NewSearchService(catalog, engine, quota, events, log)

	limiters := router.DefaultLimiters()
	defer limiters.Close()

	var cachePing handler.Pinger
	if cache.Enabled() {
		cachePing = cache
	}

	app := fiber.New(fiber.Config{
		AppName:      "YouTube Assistant API",
		ServerHeader: serviceName,
	})
	router.Setup(app, &router.Handlers{
		Search:    handler.NewSearchHandler(search),
		Feedback:  handler.NewFeedbackHandler(service.NewFeedbackService(feedback, clicks)),
		Quota:     handler.NewQuotaHandler(quota),
		Analytics: handler.NewAnalyticsHandler(service.NewAnalyticsService(queries, feedback, clicks, quotaLog)),
		Health: handler.NewHealthHandler(version,
			handler.HealthCheck{Name: "database", Pinger: pool},
			handler.HealthCheck{Name: "redis", Pinger: cachePing},
			handler.HealthCheck{Name: "embedding", Pinger: modelPing},
		),
	}, limiters, cfg.CORSOrigins)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
		if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	retention.Stop()
	<-events.Done()
	if err := tp.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
