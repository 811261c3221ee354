package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/api/handlers"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
	"github.com/zatekoja/referralcoordination/backend/tests/mocks"
)

func newReferralHandler(t *testing.T) (*handlers.ReferralHandler, *mocks.MockReferralRepository) {
	repo := mocks.NewMockReferralRepository(t)
	service := services.NewReferralService(repo, mocks.NewMockMatchRepository(t), nil)
	return handlers.NewReferralHandler(service), repo
}

func TestReferralHandler_CreateReferral(t *testing.T) {
	handler, repo := newReferralHandler(t)
	repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entities.Referral")).Return(nil)

	req := jsonRequest(t, http.MethodPost, "/api/referrals", map[string]interface{}{
		"id":          "client-chosen",
		"serviceType": "Housing Assistance",
		"urgency":     "high",
		"counties":    []string{"Ramsey"},
	})
	w := serve("POST /api/referrals", handler.CreateReferral, req)

	require.Equal(t, http.StatusCreated, w.Code)
	referral := decodeBody[entities.Referral](t, w)
	assert.NotEmpty(t, referral.ID)
	assert.NotEqual(t, "client-chosen", referral.ID)
	assert.Equal(t, entities.ReferralStatusPending, referral.Status)
	assert.Equal(t, entities.UrgencyHigh, referral.Urgency)
}

func TestReferralHandler_CreateReferral_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "malformed json", body: `{"serviceType":`, message: "invalid request body"},
		{name: "missing service type", body: `{"counties":["Ramsey"]}`, message: "serviceType is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newReferralHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/api/referrals", strings.NewReader(tt.body))

			w := serve("POST /api/referrals", handler.CreateReferral, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorMessage(t, w), tt.message)
		})
	}
}

func TestReferralHandler_GetReferral_NotFound(t *testing.T) {
	handler, repo := newReferralHandler(t)
	repo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("referral missing not found"))

	w := serve("GET /api/referrals/{id}", handler.GetReferral, jsonRequest(t, http.MethodGet, "/api/referrals/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "referral missing not found", errorMessage(t, w))
}

func TestReferralHandler_ListReferrals(t *testing.T) {
	handler, repo := newReferralHandler(t)
	repo.EXPECT().
		List(mock.Anything, repositories.ReferralFilter{Status: entities.ReferralStatusMatched, ServiceType: "Housing", Limit: 10, Offset: 20}).
		Return([]*entities.Referral{referralFixture(entities.ReferralStatusMatched)}, nil)

	req := jsonRequest(t, http.MethodGet, "/api/referrals?status=matched&serviceType=Housing&limit=10&offset=20", nil)
	w := serve("GET /api/referrals", handler.ListReferrals, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[struct {
		Referrals []entities.Referral `json:"referrals"`
		Count     int                 `json:"count"`
	}](t, w)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "ref-1", body.Referrals[0].ID)
}

func TestReferralHandler_ListReferrals_BadLimit(t *testing.T) {
	handler, _ := newReferralHandler(t)

	w := serve("GET /api/referrals", handler.ListReferrals, jsonRequest(t, http.MethodGet, "/api/referrals?limit=ten", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReferralHandler_UpdateStatus(t *testing.T) {
	t.Run("applies a manual status", func(t *testing.T) {
		handler, repo := newReferralHandler(t)
		repo.EXPECT().GetByID(mock.Anything, "ref-1").Return(referralFixture(entities.ReferralStatusInProgress), nil)
		repo.EXPECT().UpdateStatus(mock.Anything, "ref-1", entities.ReferralStatusInProgress, entities.ReferralStatusCompleted).Return(nil)

		req := jsonRequest(t, http.MethodPatch, "/api/referrals/ref-1/status", map[string]string{"status": "completed"})
		w := serve("PATCH /api/referrals/{id}/status", handler.UpdateStatus, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entities.ReferralStatusCompleted, decodeBody[entities.Referral](t, w).Status)
	})

	t.Run("terminal referral conflicts", func(t *testing.T) {
		handler, repo := newReferralHandler(t)
		repo.EXPECT().GetByID(mock.Anything, "ref-1").Return(referralFixture(entities.ReferralStatusRejected), nil)

		req := jsonRequest(t, http.MethodPatch, "/api/referrals/ref-1/status", map[string]string{"status": "in_progress"})
		w := serve("PATCH /api/referrals/{id}/status", handler.UpdateStatus, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.True(t, strings.HasPrefix(errorMessage(t, w), "referral cannot move from rejected"))
	})
}
