package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/api/handlers"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	"github.com/zatekoja/referralcoordination/backend/tests/mocks"
)

func newProviderHandler(t *testing.T) (*handlers.ProviderHandler, *mocks.MockProviderRepository) {
	repo := mocks.NewMockProviderRepository(t)
	return handlers.NewProviderHandler(services.NewProviderService(repo, nil, nil)), repo
}

func TestProviderHandler_CreateProvider(t *testing.T) {
	handler, repo := newProviderHandler(t)

	var stored *entities.Provider
	repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entities.Provider")).
		Run(func(_ context.Context, p *entities.Provider) { stored = p }).
		Return(nil)

	req := jsonRequest(t, http.MethodPost, "/api/providers", map[string]interface{}{
		"name":           "Northside Counseling",
		"serviceTypes":   []string{"Mental Health Therapy"},
		"countiesServed": []string{"Hennepin"},
		"capacity":       "medium",
		"rating":         4.2,
	})
	w := serve("POST /api/providers", handler.CreateProvider, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive, "providers are active unless the body says otherwise")
	assert.Equal(t, stored.ID, decodeBody[entities.Provider](t, w).ID)
}

func TestProviderHandler_CreateProvider_Invalid(t *testing.T) {
	handler, _ := newProviderHandler(t)

	req := jsonRequest(t, http.MethodPost, "/api/providers", map[string]interface{}{
		"name":     "Northside Counseling",
		"capacity": "huge",
		"rating":   7,
	})
	w := serve("POST /api/providers", handler.CreateProvider, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	message := errorMessage(t, w)
	assert.Contains(t, message, "unknown capacity")
	assert.Contains(t, message, "rating must be within 0-5")
}

func TestProviderHandler_ListProviders(t *testing.T) {
	handler, repo := newProviderHandler(t)
	repo.EXPECT().
		List(mock.Anything, mock.MatchedBy(func(f repositories.ProviderFilter) bool {
			return f.ServiceType == "Housing" && f.County == "Ramsey" &&
				f.IsActive != nil && !*f.IsActive && f.Limit == 50
		})).
		Return([]*entities.Provider{providerFixture("p-1", 4)}, nil)

	w := serve("GET /api/providers", handler.ListProviders,
		jsonRequest(t, http.MethodGet, "/api/providers?serviceType=Housing&county=Ramsey&active=false", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody[map[string]interface{}](t, w)["count"])
}

func TestProviderHandler_ListProviders_BadActiveFlag(t *testing.T) {
	handler, _ := newProviderHandler(t)

	w := serve("GET /api/providers", handler.ListProviders, jsonRequest(t, http.MethodGet, "/api/providers?active=maybe", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "active must be true or false", errorMessage(t, w))
}

func TestProviderHandler_UpdateProvider(t *testing.T) {
	handler, repo := newProviderHandler(t)
	repo.EXPECT().GetByID(mock.Anything, "p-1").Return(providerFixture("p-1", 4), nil)
	repo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(p *entities.Provider) bool {
		return p.AvailableSlots == 0 && p.Capacity == entities.CapacityLow
	})).Return(nil)

	req := jsonRequest(t, http.MethodPatch, "/api/providers/p-1", map[string]interface{}{
		"availableSlots": 0,
		"capacity":       "low",
	})
	w := serve("PATCH /api/providers/{id}", handler.UpdateProvider, req)

	require.Equal(t, http.StatusOK, w.Code)
	provider := decodeBody[entities.Provider](t, w)
	assert.Equal(t, 0, provider.AvailableSlots)
	assert.Equal(t, entities.CapacityLow, provider.Capacity)
}
