package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/events"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
	"github.com/zatekoja/referralcoordination/backend/tests/mocks"
)

func TestProviderService_CreateProvider_IndexesProvider(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	index := mocks.NewMockProviderSearchIndex(t)
	service := services.NewProviderService(repo, index, nil)

	provider := candidate("", 4.2, func(p *entities.Provider) {
		p.ServiceTypes = []string{"Mental Health Therapy", "mental health therapy"}
	})

	repo.EXPECT().Create(mock.Anything, provider).Return(nil)
	index.EXPECT().Index(mock.Anything, provider).Return(nil)

	err := service.CreateProvider(context.Background(), provider)

	require.NoError(t, err)
	assert.NotEmpty(t, provider.ID)
	assert.Equal(t, []string{"Mental Health Therapy"}, provider.ServiceTypes)
}

func TestProviderService_CreateProvider_IndexFailureIsNotFatal(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	index := mocks.NewMockProviderSearchIndex(t)
	service := services.NewProviderService(repo, index, nil)
	provider := candidate("p-1", 4.2)

	repo.EXPECT().Create(mock.Anything, provider).Return(nil)
	index.EXPECT().Index(mock.Anything, provider).Return(errors.New("typesense down"))

	assert.NoError(t, service.CreateProvider(context.Background(), provider))
}

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *entities.Provider)
		problem string
	}{
		{name: "missing name", mutate: func(p *entities.Provider) { p.Name = "" }, problem: "name is required"},
		{name: "no services", mutate: func(p *entities.Provider) { p.ServiceTypes = nil }, problem: "service type"},
		{name: "no counties", mutate: func(p *entities.Provider) { p.CountiesServed = nil }, problem: "county"},
		{name: "unknown capacity", mutate: func(p *entities.Provider) { p.Capacity = "huge" }, problem: "capacity"},
		{name: "negative slots", mutate: func(p *entities.Provider) { p.AvailableSlots = -1 }, problem: "availableSlots"},
		{name: "rating above five", mutate: func(p *entities.Provider) { p.Rating = 5.5 }, problem: "rating"},
		{name: "unknown size", mutate: func(p *entities.Provider) { p.ProviderSize = "giant" }, problem: "provider size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.ValidateProvider(candidate("p-1", 4.0, tt.mutate))

			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			assert.Contains(t, err.Error(), tt.problem)
		})
	}

	assert.NoError(t, services.ValidateProvider(candidate("p-1", 4.0)))
}

func TestProviderService_UpdateProvider_PublishesChange(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	bus := events.NewMemoryEventBus()
	defer bus.Close()
	service := services.NewProviderService(repo, nil, bus)
	ch := subscribe(t, bus, providers.EventChannelProviderUpdates)

	repo.EXPECT().GetByID(mock.Anything, "p-1").Return(candidate("p-1", 4.0), nil)
	repo.EXPECT().Update(mock.Anything, mock.AnythingOfType("*entities.Provider")).Return(nil)

	slots := 0
	updated, err := service.UpdateProvider(context.Background(), "p-1", services.ProviderUpdate{AvailableSlots: &slots})

	require.NoError(t, err)
	assert.Equal(t, 0, updated.AvailableSlots)

	event := nextEvent(t, ch)
	assert.Equal(t, entities.ProviderEventTypeUpdated, event.EventType)
	assert.Equal(t, "p-1", event.ProviderID)
	assert.Equal(t, 0, event.ChangedFields["availableSlots"])
}

func TestProviderService_UpdateProvider_NoChanges(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	service := services.NewProviderService(repo, nil, nil)

	repo.EXPECT().GetByID(mock.Anything, "p-1").Return(candidate("p-1", 4.0), nil)

	rating := 4.0
	_, err := service.UpdateProvider(context.Background(), "p-1", services.ProviderUpdate{Rating: &rating})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProviderService_UpdateProvider_RejectsInvalidResult(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	service := services.NewProviderService(repo, nil, nil)

	repo.EXPECT().GetByID(mock.Anything, "p-1").Return(candidate("p-1", 4.0), nil)

	rating := 9.0
	_, err := service.UpdateProvider(context.Background(), "p-1", services.ProviderUpdate{Rating: &rating})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestProviderService_Reindex_Pages(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	index := mocks.NewMockProviderSearchIndex(t)
	service := services.NewProviderService(repo, index, nil)

	firstPage := make([]*entities.Provider, 200)
	for i := range firstPage {
		firstPage[i] = candidate("p", 4.0)
	}

	index.EXPECT().InitSchema(mock.Anything).Return(nil)
	repo.EXPECT().List(mock.Anything, repositories.ProviderFilter{Limit: 200, Offset: 0}).Return(firstPage, nil)
	repo.EXPECT().List(mock.Anything, repositories.ProviderFilter{Limit: 200, Offset: 200}).
		Return([]*entities.Provider{candidate("p-last", 4.0)}, nil)
	index.EXPECT().Index(mock.Anything, mock.Anything).Return(nil).Times(201)

	indexed, err := service.Reindex(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 201, indexed)
}

func TestProviderService_Reindex_WithoutIndex(t *testing.T) {
	service := services.NewProviderService(mocks.NewMockProviderRepository(t), nil, nil)

	_, err := service.Reindex(context.Background())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
