package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/cache"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	"github.com/zatekoja/referralcoordination/backend/tests/mocks"
)

func activeProviders(n int) []*entities.Provider {
	out := make([]*entities.Provider, n)
	for i := range out {
		out[i] = &entities.Provider{ID: fmt.Sprintf("p-%d", i), Name: "Provider", IsActive: true}
	}
	return out
}

func TestCacheWarmingService_WarmCache(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockProviderRepository(t)
	memory := cache.NewMemoryAdapter()
	service := services.NewCacheWarmingService(repo, memory, 60, 3)

	repo.EXPECT().
		List(mock.Anything, mock.MatchedBy(func(f repositories.ProviderFilter) bool {
			return f.IsActive != nil && *f.IsActive && f.Limit == 3 && f.Offset == 0
		})).
		Return(activeProviders(2), nil).
		Once()

	warmed, err := service.WarmCache(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, warmed)
	assert.ElementsMatch(t, []string{"provider:p-0", "provider:p-1"}, memory.Keys())

	data, err := memory.Get(ctx, "provider:p-1")
	require.NoError(t, err)
	var cached entities.Provider
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, "p-1", cached.ID)
}

func TestCacheWarmingService_WarmCache_Pages(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	service := services.NewCacheWarmingService(repo, cache.NewMemoryAdapter(), 60, 150)

	repo.EXPECT().
		List(mock.Anything, mock.MatchedBy(func(f repositories.ProviderFilter) bool { return f.Offset == 0 })).
		Return(activeProviders(100), nil).
		Once()
	repo.EXPECT().
		List(mock.Anything, mock.MatchedBy(func(f repositories.ProviderFilter) bool {
			return f.Offset == 100 && f.Limit == 50
		})).
		Return(activeProviders(50), nil).
		Once()

	warmed, err := service.WarmCache(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 150, warmed)
}

func TestCacheWarmingService_WarmCache_RepoError(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	service := services.NewCacheWarmingService(repo, cache.NewMemoryAdapter(), 60, 10)

	repo.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	warmed, err := service.WarmCache(context.Background())

	assert.Error(t, err)
	assert.Zero(t, warmed)
}
