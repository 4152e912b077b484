package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/mohamadjaafar/recipe-management/internal/config"
	"github.com/mohamadjaafar/recipe-management/internal/db"
	"github.com/mohamadjaafar/recipe-management/internal/logger"
	"github.com/mohamadjaafar/recipe-management/internal/metrics"
	"github.com/mohamadjaafar/recipe-management/internal/sentry"
	"github.com/mohamadjaafar/recipe-management/internal/services/generation"
	"github.com/mohamadjaafar/recipe-management/internal/services/openai"
	"github.com/mohamadjaafar/recipe-management/internal/store"
	"github.com/mohamadjaafar/recipe-management/internal/telemetry"
	"github.com/mohamadjaafar/recipe-management/internal/worker"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName+"-worker", cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, nil)
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName+"-worker", cfg.ServiceVersion)
	if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Initialize logger with OTel support
	appLogger := logger.New(cfg.Env)
	slog.SetDefault(appLogger)

	// Database connection
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)

	// Nutrition estimates reuse the same provider chain as the API
	provider := generation.NewProvider(cfg.Generation, cfg.AnthropicKey, cfg.GroqKey, cfg.GeminiKey)
	generator := generation.NewGenerator(provider)

	var embeddings worker.EmbeddingClient
	if cfg.OpenAIKey != "" {
		embeddings = openai.NewClient(cfg.OpenAIKey)
	}

	broadcaster := worker.NewProgressBroadcaster(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)

	workerMetrics, err := worker.NewWorkerMetrics()
	if err != nil {
		slog.Warn("Failed to init worker metrics", "error", err)
	}

	processor := worker.NewRecipeProcessor(st.Recipes, st.Shares, generator, embeddings, broadcaster, workerMetrics)

	srv := worker.NewServer(cfg.RedisURL)

	mux := asynq.NewServeMux()
	mux.Use(worker.SentryMiddleware)
	mux.Use(worker.OTelMiddleware)
	mux.HandleFunc(worker.TypeEstimateNutrition, processor.HandleEstimateNutrition)
	mux.HandleFunc(worker.TypeGenerateEmbedding, processor.HandleGenerateEmbedding)
	mux.HandleFunc(worker.TypeCleanupShares, processor.HandleCleanupShares)

	// Nightly sweep of shares whose recipe or recipient is gone
	redisOpt, err := worker.ParseRedisURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("0 3 * * *", worker.NewCleanupSharesTask()); err != nil {
		slog.Warn("Failed to register cleanup schedule", "error", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Shutdown()

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("Shutting down worker...")
		srv.Shutdown()
	}()

	slog.Info("Starting worker")
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}
