package handlers

import (
	"net/http"

	"github.com/zatekoja/referralcoordination/backend/internal/api/loaders"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// MatchHandler exposes the matching engine: stateless previews and persisted
// runs for stored referrals
type MatchHandler struct {
	previewService  *services.MatchPreviewService
	matchingService *services.ReferralMatchingService
	referralService *services.ReferralService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(
	previewService *services.MatchPreviewService,
	matchingService *services.ReferralMatchingService,
	referralService *services.ReferralService,
) *MatchHandler {
	return &MatchHandler{
		previewService:  previewService,
		matchingService: matchingService,
		referralService: referralService,
	}
}

// Preview handles POST /api/matches/preview
func (h *MatchHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req services.PreviewRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	results, err := h.previewService.Preview(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

type runMatchingRequest struct {
	Options *services.MatchOptions `json:"options,omitempty"`
	Trace   bool                   `json:"trace,omitempty"`
}

// RunMatching handles POST /api/referrals/{id}/match
func (h *MatchHandler) RunMatching(w http.ResponseWriter, r *http.Request) {
	var req runMatchingRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	run, err := h.matchingService.RunMatching(r.Context(), r.PathValue("id"), req.Options, req.Trace)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, run)
}

// ListMatches handles GET /api/referrals/{id}/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchingService.ListMatches(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ProviderID
	}
	names := loaders.ProviderNames(r.Context(), ids)
	for _, m := range matches {
		m.ProviderName = names[m.ProviderID]
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

// SelectProvider handles POST /api/referrals/{id}/matches/{providerId}/select
func (h *MatchHandler) SelectProvider(w http.ResponseWriter, r *http.Request) {
	match, err := h.referralService.SelectProvider(r.Context(), r.PathValue("id"), r.PathValue("providerId"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, match)
}

type providerResponseRequest struct {
	Accepted *bool  `json:"accepted"`
	Note     string `json:"note,omitempty"`
}

// RecordProviderResponse handles POST /api/referrals/{id}/matches/{providerId}/response
func (h *MatchHandler) RecordProviderResponse(w http.ResponseWriter, r *http.Request) {
	var req providerResponseRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if req.Accepted == nil {
		respondWithError(w, http.StatusBadRequest, "accepted is required")
		return
	}

	referral, err := h.referralService.RecordProviderResponse(r.Context(), r.PathValue("id"), r.PathValue("providerId"), *req.Accepted, req.Note)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"referral": referral,
		"response": responseLabel(*req.Accepted),
	})
}

func responseLabel(accepted bool) entities.ProviderResponse {
	if accepted {
		return entities.ProviderResponseAccepted
	}
	return entities.ProviderResponseDeclined
}
