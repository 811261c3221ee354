package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/cache"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/database"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/events"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/search"
	"github.com/zatekoja/referralcoordination/backend/internal/api/handlers"
	"github.com/zatekoja/referralcoordination/backend/internal/api/middleware"
	"github.com/zatekoja/referralcoordination/backend/internal/api/routes"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/notifications"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/observability"
	"github.com/zatekoja/referralcoordination/backend/pkg/config"
	"github.com/zatekoja/referralcoordination/backend/pkg/secrets"
)

func main() {
	if _, err := secrets.NewLoader(secrets.ConfigFromEnv()).Apply(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load secrets from Vault")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			observability.EnableOTelLogs(cfg.OTEL.ServiceName)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Without Redis the process falls back to an in-memory cache and event
	// bus, which is only correct for a single instance
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process cache and event bus")
		cacheProvider = cache.NewMemoryAdapter()
		eventBus = events.NewMemoryEventBus()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized successfully")
	}

	var searchIndex providers.ProviderSearchIndex
	if cfg.Typesense.Enabled {
		typesenseClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Typesense client, candidates will come from PostgreSQL")
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := adapter.InitSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to init Typesense schema")
			}
			searchIndex = adapter
			log.Info().Msg("Typesense client initialized successfully")
		}
	}

	// Adapters
	providerAdapter := database.NewCachedProviderAdapter(
		database.NewProviderAdapter(pgClient),
		cacheProvider,
		cfg.Matching.ProviderCacheTTLSeconds,
	)
	referralAdapter := database.NewReferralAdapter(pgClient)
	matchAdapter := database.NewMatchAdapter(pgClient)

	// Services
	engine := services.NewMatchingEngine()
	referralService := services.NewReferralService(referralAdapter, matchAdapter, eventBus)
	providerService := services.NewProviderService(providerAdapter, searchIndex, eventBus)
	matchingService := services.NewReferralMatchingService(
		engine,
		referralAdapter,
		providerAdapter,
		matchAdapter,
		searchIndex,
		eventBus,
		metrics,
		cfg.Matching.CandidateLimit,
	)
	previewService := services.NewMatchPreviewService(engine, cacheProvider, cfg.Matching.PreviewCacheTTLSeconds, metrics)

	cacheInvalidationService := services.NewCacheInvalidationService(cacheProvider, eventBus)
	if err := cacheInvalidationService.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start cache invalidation service")
	}

	if interval := cfg.Matching.CacheWarmIntervalSeconds; interval > 0 {
		warmer := services.NewCacheWarmingService(
			database.NewProviderAdapter(pgClient),
			cacheProvider,
			cfg.Matching.ProviderCacheTTLSeconds,
			cfg.Matching.CacheWarmMaxProviders,
		)
		warmer.StartPeriodicWarming(ctx, time.Duration(interval)*time.Second)
	}

	notificationService := services.NewNotificationService(
		notifications.NewNotifier(&cfg.Notify),
		eventBus,
		time.Duration(cfg.Notify.TimeoutSeconds)*time.Second,
	)
	if err := notificationService.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start notification service")
	}

	sseHandler := handlers.NewSSEHandler(eventBus)
	router := routes.NewRouter(
		handlers.NewReferralHandler(referralService),
		handlers.NewProviderHandler(providerService),
		handlers.NewMatchHandler(previewService, matchingService, referralService),
		sseHandler,
		providerAdapter,
		middleware.NewCacheMiddleware(cacheProvider, cfg.Matching.ProviderCacheTTLSeconds, metrics),
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router.SetupRoutes(),
		ReadTimeout: 15 * time.Second,
		// Event streams hold the connection open, so no write timeout
		IdleTimeout: 60 * time.Second,
	}
	server.RegisterOnShutdown(sseHandler.Shutdown)

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	cancel()
	notificationService.Stop()
	cacheInvalidationService.Stop()

	if err := eventBus.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing event bus")
	}

	log.Info().Msg("Server stopped")
}
