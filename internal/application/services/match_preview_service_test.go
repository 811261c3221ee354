package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/cache"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

func previewRequest() services.PreviewRequest {
	return services.PreviewRequest{
		Referral: storedReferral(entities.ReferralStatusPending),
		Candidates: []*entities.Provider{
			candidate("p-1", 4.0),
			candidate("p-2", 4.0, func(p *entities.Provider) { p.ServiceTypes = []string{"Housing"} }),
		},
	}
}

func TestMatchPreviewService_Preview(t *testing.T) {
	service := services.NewMatchPreviewService(services.NewMatchingEngine(), nil, 0, nil)

	results, err := service.Preview(context.Background(), previewRequest())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p-1", results[0].ProviderID)
	assert.Equal(t, 1, results[0].Rank)
}

func TestMatchPreviewService_Preview_Trace(t *testing.T) {
	service := services.NewMatchPreviewService(services.NewMatchingEngine(), nil, 0, nil)
	req := previewRequest()
	req.Trace = true

	results, err := service.Preview(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[1].Eligible)
	assert.Equal(t, []string{entities.ReasonServiceNotOffered}, results[1].RejectionReasons)
}

func TestMatchPreviewService_Preview_CachesIdenticalRequests(t *testing.T) {
	memory := cache.NewMemoryAdapter()
	service := services.NewMatchPreviewService(services.NewMatchingEngine(), memory, 60, nil)

	first, err := service.Preview(context.Background(), previewRequest())
	require.NoError(t, err)
	require.Len(t, memory.Keys(), 1)
	assert.Contains(t, memory.Keys()[0], "match:preview:")

	second, err := service.Preview(context.Background(), previewRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, memory.Keys(), 1)

	changed := previewRequest()
	changed.Options.MaxResults = 5
	_, err = service.Preview(context.Background(), changed)
	require.NoError(t, err)
	assert.Len(t, memory.Keys(), 2)
}

func TestMatchPreviewService_Preview_InvalidReferral(t *testing.T) {
	service := services.NewMatchPreviewService(services.NewMatchingEngine(), cache.NewMemoryAdapter(), 60, nil)
	req := previewRequest()
	req.Referral.ServiceType = ""

	_, err := service.Preview(context.Background(), req)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
