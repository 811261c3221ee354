package loaders_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/api/loaders"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/tests/mocks"
)

func TestProviderNames_BatchesLookups(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	repo.EXPECT().GetByIDs(mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return assert.ElementsMatch(t, []string{"p-1", "p-2", "p-3"}, ids)
	})).Return([]*entities.Provider{
		{ID: "p-1", Name: "Northside Counseling"},
		{ID: "p-3", Name: "Eastside Housing"},
	}, nil).Once()

	ctx := loaders.WithLoaders(context.Background(), loaders.NewLoaders(repo))

	names := loaders.ProviderNames(ctx, []string{"p-1", "p-2", "p-3"})

	assert.Equal(t, map[string]string{"p-1": "Northside Counseling", "p-3": "Eastside Housing"}, names)
}

func TestProviderNames_WithoutLoaders(t *testing.T) {
	assert.Empty(t, loaders.ProviderNames(context.Background(), []string{"p-1"}))
}

func TestMiddleware_AttachesLoaders(t *testing.T) {
	repo := mocks.NewMockProviderRepository(t)
	var attached *loaders.Loaders

	handler := loaders.Middleware(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attached = loaders.For(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/referrals/ref-1/matches", nil))

	require.NotNil(t, attached)
	assert.NotNil(t, attached.ProviderLoader)
}
