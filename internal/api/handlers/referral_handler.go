package handlers

import (
	"net/http"

	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
)

// ReferralHandler handles referral intake and lifecycle requests
type ReferralHandler struct {
	referralService *services.ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralService *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// CreateReferral handles POST /api/referrals
func (h *ReferralHandler) CreateReferral(w http.ResponseWriter, r *http.Request) {
	var referral entities.Referral
	if err := decodeJSON(r, &referral, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	referral.ID = ""

	if err := h.referralService.CreateReferral(r.Context(), &referral); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, referral)
}

// GetReferral handles GET /api/referrals/{id}
func (h *ReferralHandler) GetReferral(w http.ResponseWriter, r *http.Request) {
	referral, err := h.referralService.GetReferral(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, referral)
}

// ListReferrals handles GET /api/referrals
func (h *ReferralHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	referrals, err := h.referralService.ListReferrals(r.Context(), repositories.ReferralFilter{
		Status:      entities.ReferralStatus(r.URL.Query().Get("status")),
		ServiceType: r.URL.Query().Get("serviceType"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"referrals": referrals,
		"count":     len(referrals),
	})
}

type statusRequest struct {
	Status entities.ReferralStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/referrals/{id}/status
func (h *ReferralHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	referral, err := h.referralService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, referral)
}
