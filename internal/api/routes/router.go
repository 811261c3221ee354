package routes

import (
	"net/http"

	"github.com/zatekoja/referralcoordination/backend/internal/api/handlers"
	"github.com/zatekoja/referralcoordination/backend/internal/api/loaders"
	"github.com/zatekoja/referralcoordination/backend/internal/api/middleware"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	referralHandler *handlers.ReferralHandler
	providerHandler *handlers.ProviderHandler
	matchHandler    *handlers.MatchHandler
	sseHandler      *handlers.SSEHandler

	providerRepo    repositories.ProviderRepository
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router. sseHandler, cacheMiddleware and metrics may be nil.
func NewRouter(
	referralHandler *handlers.ReferralHandler,
	providerHandler *handlers.ProviderHandler,
	matchHandler *handlers.MatchHandler,
	sseHandler *handlers.SSEHandler,
	providerRepo repositories.ProviderRepository,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		referralHandler: referralHandler,
		providerHandler: providerHandler,
		matchHandler:    matchHandler,
		sseHandler:      sseHandler,
		providerRepo:    providerRepo,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	routes := middleware.NewRouteMethods(r.mux)

	routes.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Referral endpoints
	routes.HandleFunc("POST /api/referrals", r.referralHandler.CreateReferral)
	routes.HandleFunc("GET /api/referrals", r.referralHandler.ListReferrals)
	routes.HandleFunc("GET /api/referrals/{id}", r.referralHandler.GetReferral)
	routes.HandleFunc("PATCH /api/referrals/{id}/status", r.referralHandler.UpdateStatus)

	// Matching endpoints
	routes.HandleFunc("POST /api/matches/preview", r.matchHandler.Preview)
	routes.HandleFunc("POST /api/referrals/{id}/match", r.matchHandler.RunMatching)
	routes.HandleFunc("GET /api/referrals/{id}/matches", r.matchHandler.ListMatches)
	routes.HandleFunc("POST /api/referrals/{id}/matches/{providerId}/select", r.matchHandler.SelectProvider)
	routes.HandleFunc("POST /api/referrals/{id}/matches/{providerId}/response", r.matchHandler.RecordProviderResponse)

	// Provider directory endpoints
	routes.HandleFunc("POST /api/providers", r.providerHandler.CreateProvider)
	routes.HandleFunc("GET /api/providers", r.providerHandler.ListProviders)
	routes.HandleFunc("GET /api/providers/{id}", r.providerHandler.GetProvider)
	routes.HandleFunc("PATCH /api/providers/{id}", r.providerHandler.UpdateProvider)

	// Event streams
	if r.sseHandler != nil {
		routes.HandleFunc("GET /api/stream/referrals", r.sseHandler.StreamAllReferrals)
		routes.HandleFunc("GET /api/stream/referrals/{id}", r.sseHandler.StreamReferralUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = loaders.Middleware(r.providerRepo)(handler)
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORS(routes.Methods())(handler)

	return handler
}
