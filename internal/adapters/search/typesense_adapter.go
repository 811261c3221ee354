package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	tsclient "github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/referralcoordination/backend/pkg/utils"
)

// Typesense caps per_page at 250
const maxPerPage = 250

// TypesenseAdapter narrows provider pools using a Typesense collection
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ providers.ProviderSearchIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index upserts a provider document
func (a *TypesenseAdapter) Index(ctx context.Context, provider *entities.Provider) error {
	_, err := a.client.Client().Collection(tsclient.ProvidersCollection).Documents().Upsert(ctx, buildProviderDocument(provider))
	if err != nil {
		return fmt.Errorf("failed to index provider: %w", err)
	}
	return nil
}

// Delete removes a provider from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.ProvidersCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete provider from index: %w", err)
	}
	return nil
}

// CandidateIDs returns ids of active providers offering serviceType in at
// least one of counties, most recently updated first, up to limit
func (a *TypesenseAdapter) CandidateIDs(ctx context.Context, serviceType string, counties []string, limit int) ([]string, error) {
	filter, ok := buildCandidateFilter(serviceType, counties)
	if !ok {
		return []string{}, nil
	}

	perPage := maxPerPage
	if limit > 0 && limit < perPage {
		perPage = limit
	}

	ids := make([]string, 0)
	for page := 1; ; page++ {
		params := &api.SearchCollectionParams{
			Q:             pointer.String("*"),
			QueryBy:       pointer.String("name"),
			FilterBy:      pointer.String(filter),
			SortBy:        pointer.String("updated_at:desc"),
			IncludeFields: pointer.String("id"),
			Page:          pointer.Int(page),
			PerPage:       pointer.Int(perPage),
		}

		result, err := a.client.Client().Collection(tsclient.ProvidersCollection).Documents().Search(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to search providers: %w", err)
		}
		if result.Hits == nil || len(*result.Hits) == 0 {
			break
		}

		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			if id, ok := (*hit.Document)["id"].(string); ok {
				ids = append(ids, id)
			}
		}

		if len(*result.Hits) < perPage || (limit > 0 && len(ids) >= limit) {
			break
		}
	}

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func buildProviderDocument(p *entities.Provider) map[string]interface{} {
	return map[string]interface{}{
		"id":              p.ID,
		"name":            p.Name,
		"service_terms":   utils.NewTermSet(p.ServiceTypes).Sorted(),
		"county_terms":    utils.NewTermSet(p.CountiesServed).Sorted(),
		"insurance_terms": utils.NewTermSet(p.InsuranceAccepted).Sorted(),
		"capacity":        string(p.Capacity),
		"available_slots": p.AvailableSlots,
		"rating":          p.Rating,
		"is_active":       p.IsActive,
		"updated_at":      p.UpdatedAt.Unix(),
	}
}

// buildCandidateFilter renders a filter_by clause. Values are backtick-quoted
// so terms containing spaces or commas survive.
func buildCandidateFilter(serviceType string, counties []string) (string, bool) {
	service := utils.NormalizeTerm(serviceType)
	countyTerms := utils.NewTermSet(counties).Sorted()
	if service == "" || len(countyTerms) == 0 {
		return "", false
	}

	quoted := make([]string, len(countyTerms))
	for i, c := range countyTerms {
		quoted[i] = quoteFilterValue(c)
	}

	return fmt.Sprintf("is_active:=true && service_terms:=%s && county_terms:=[%s]",
		quoteFilterValue(service), strings.Join(quoted, ",")), true
}

func quoteFilterValue(v string) string {
	return "`" + strings.ReplaceAll(v, "`", "") + "`"
}
