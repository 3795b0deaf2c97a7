package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/application"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/config"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
	apiinfra "github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/api"
	rediscache "github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/cache"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/filestore"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/metrics"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/pubsub"
	mongorepo "github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/repository"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		logger = logger.Level(level)
	}

	// Initialize repositories: MongoDB when configured, flat JSON files
	// under the data directory otherwise.
	var (
		versionRepo    ports.VersionRepository
		auditRepo      ports.AuditRepository
		publishedStore ports.PublishedStore
	)
	if cfg.Storage.MongoURI != "" {
		client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Storage.MongoURI))
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer client.Disconnect(context.Background())

		db := client.Database(cfg.Storage.MongoDatabase)
		versionRepo = mongorepo.NewMongoVersionRepository(db)
		auditRepo = mongorepo.NewMongoAuditRepository(db)
		publishedStore = mongorepo.NewMongoPublishedStore(db)
		logger.Info().Str("database", cfg.Storage.MongoDatabase).Msg("Using MongoDB settings store")
	} else {
		store, err := filestore.New(cfg.Storage.DataDir, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open data directory")
		}
		versionRepo = store.Versions()
		auditRepo = store.Audit()
		publishedStore = store.Published()
		logger.Info().Str("dir", cfg.Storage.DataDir).Msg("Using file settings store")
	}

	// Optional Redis cache for the published document
	var settingsCache ports.SettingsCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		settingsCache = rediscache.NewRedisSettingsCache(rdb, cfg.Redis.CacheTTL, logger)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Settings cache enabled")
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	settingsMetrics := metrics.New(registry)

	// Initialize settings event pub/sub
	settingsPubSub := pubsub.NewSettingsPubSub(logger)

	// Initialize application services
	settingsService := application.NewSettingsService(
		versionRepo,
		auditRepo,
		publishedStore,
		settingsPubSub,
		settingsMetrics,
		logger,
		application.SettingsServiceOptions{
			Cache:              settingsCache,
			ValidateOnRollback: cfg.Settings.ValidateOnRollback,
		},
	)
	quoteService := application.NewQuoteService(settingsService, logger)

	// Re-prime the cache in the background after every publish or rollback.
	// The service invalidates synchronously; this warmer repopulates.
	if settingsCache != nil {
		go warmCache(context.Background(), settingsService, settingsPubSub, logger)
	}

	settingsHandler := apiinfra.NewSettingsHandler(settingsService, logger)
	quoteHandler := apiinfra.NewQuoteHandler(quoteService, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Metrics
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Settings lifecycle
	r.Get("/settings", settingsHandler.GetPublished)
	r.Get("/settings/versions", settingsHandler.ListVersions)
	r.Post("/settings/versions", settingsHandler.CreateVersion)
	r.Get("/settings/audit-log", settingsHandler.GetAuditLog)
	r.Get("/settings/validate", settingsHandler.ValidateVersion)
	r.Post("/settings/validate", settingsHandler.ValidateContent)
	r.Put("/settings/versions/{id}/publish", settingsHandler.Publish)
	r.Post("/settings/versions/{id}/rollback", settingsHandler.Rollback)
	r.Get("/settings/export", settingsHandler.Export)
	r.Post("/settings/import", settingsHandler.Import)
	r.Get("/settings/permissions", settingsHandler.CheckPermission)

	// Pricing quotes
	r.Post("/quotes/order", quoteHandler.QuoteOrder)
	r.Post("/quotes/shipping", quoteHandler.QuoteShipping)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info().Str("addr", addr).Msg("Starting API server")
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// warmCache re-reads the published document after each publish or rollback so
// the next quote hits a warm cache.
func warmCache(ctx context.Context, settings *application.SettingsService, ps *pubsub.SettingsPubSub, logger zerolog.Logger) {
	channel := ps.Subscribe(ctx, &pubsub.SettingsEventFilter{
		Types: []string{domain.EventPublished, domain.EventRollback},
	})
	for event := range channel.Events {
		if _, err := settings.GetPublished(ctx); err != nil {
			logger.Warn().Err(err).Str("versionId", event.VersionID).Msg("Cache warm-up failed")
		}
	}
}
