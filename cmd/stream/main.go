// Command stream serves only the referral event streams so long-lived SSE
// connections can be scaled apart from the API. It needs Redis: events are
// published by API instances and fanned out here.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/events"
	"github.com/zatekoja/referralcoordination/backend/internal/api/handlers"
	"github.com/zatekoja/referralcoordination/backend/internal/api/middleware"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/redis"
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
	observability.InitLogger(cfg.OTEL.ServiceName+"-stream", cfg.Server.Environment)

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	sseHandler := handlers.NewSSEHandler(eventBus)

	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     newStreamMux(sseHandler),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	server.RegisterOnShutdown(sseHandler.Shutdown)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Stream server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Stream server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Stream server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during stream server shutdown")
	}
	if err := eventBus.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing event bus")
	}
	log.Info().Msg("Stream server stopped")
}

func newStreamMux(sseHandler *handlers.SSEHandler) http.Handler {
	mux := http.NewServeMux()
	routes := middleware.NewRouteMethods(mux)

	routes.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	routes.HandleFunc("GET /api/stream/referrals", sseHandler.StreamAllReferrals)
	routes.HandleFunc("GET /api/stream/referrals/{id}", sseHandler.StreamReferralUpdates)
	routes.HandleFunc("GET /api/stream/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int{"connectedClients": sseHandler.GetClientCount()})
	})

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORS(routes.Methods())(handler)
	return handler
}
