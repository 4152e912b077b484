package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/mohamadjaafar/recipe-management/internal/api"
	"github.com/mohamadjaafar/recipe-management/internal/cache"
	"github.com/mohamadjaafar/recipe-management/internal/config"
	"github.com/mohamadjaafar/recipe-management/internal/db"
	"github.com/mohamadjaafar/recipe-management/internal/logger"
	"github.com/mohamadjaafar/recipe-management/internal/metrics"
	"github.com/mohamadjaafar/recipe-management/internal/middleware"
	"github.com/mohamadjaafar/recipe-management/internal/sentry"
	"github.com/mohamadjaafar/recipe-management/internal/services/generation"
	"github.com/mohamadjaafar/recipe-management/internal/services/openai"
	"github.com/mohamadjaafar/recipe-management/internal/services/search"
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
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, nil)
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion)
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

	if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	st := store.New(pool)

	// Asynq client for enqueuing background tasks
	asynqClient := worker.NewClient(cfg.RedisURL)
	defer asynqClient.Close()

	// Redis cache for substitution suggestions
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	var subCache *cache.SubstitutionCache
	if err != nil {
		slog.Warn("Failed to parse Redis URL, substitution cache disabled", "error", err)
		subCache = cache.NewSubstitutionCache(nil)
	} else {
		subCache = cache.NewSubstitutionCache(redis.NewClient(redisOpt))
	}

	// Generation provider chain per config
	provider := generation.NewProvider(cfg.Generation, cfg.AnthropicKey, cfg.GroqKey, cfg.GeminiKey)
	generator := generation.NewGenerator(provider)

	// Embedding-backed search; fall back to name search without a key
	var embeddings search.EmbeddingClient
	if cfg.OpenAIKey != "" {
		embeddings = openai.NewClient(cfg.OpenAIKey)
	}
	searchClient := search.NewClient(st.Recipes, embeddings)

	apiServer := api.NewServer(cfg, st, generator, searchClient, subCache, asynqClient)

	// Router
	r := chi.NewRouter()

	r.Use(otelchi.Middleware(cfg.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(cfg.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(sentry.HTTPMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Protected API routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg))

		r.Post("/api/ai/generate-recipe", apiServer.HandleGenerateRecipe)
		r.Post("/api/ai/meal-plan", apiServer.HandleMealPlan)
		r.Post("/api/ai/nutrition", apiServer.HandleNutrition)
		r.Post("/api/ai/substitutions", apiServer.HandleSubstitution)

		r.Post("/api/recipes", apiServer.HandleCreateRecipe)
		r.Get("/api/recipes", apiServer.HandleListRecipes)
		r.Get("/api/recipes/search", apiServer.HandleSearch)
		r.Get("/api/recipes/{id}", apiServer.HandleGetRecipe)
		r.Put("/api/recipes/{id}", apiServer.HandleUpdateRecipe)
		r.Delete("/api/recipes/{id}", apiServer.HandleDeleteRecipe)
		r.Post("/api/recipes/{id}/share", apiServer.HandleShareRecipe)
		r.Get("/api/shared", apiServer.HandleListShared)

		r.Post("/api/meal-plans", apiServer.HandleCreateMealPlan)
		r.Get("/api/meal-plans", apiServer.HandleListMealPlans)
		r.Delete("/api/meal-plans/{id}", apiServer.HandleDeleteMealPlan)

		r.Get("/api/profile", apiServer.HandleGetProfile)
		r.Put("/api/profile", apiServer.HandleUpdateProfile)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigChan:
		case <-gctx.Done():
			return gctx.Err()
		}
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server failed: %v", err)
	}
}
