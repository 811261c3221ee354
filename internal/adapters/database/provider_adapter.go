package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
	"github.com/zatekoja/referralcoordination/backend/pkg/utils"
)

const providersTable = "providers"

var providerColumns = []interface{}{
	"id", "name", "service_types", "counties_served", "insurance_accepted",
	"languages_spoken", "accessibility_features", "capacity", "available_slots",
	"rating", "provider_size", "is_active", "created_at", "updated_at",
}

// ProviderAdapter implements ProviderRepository
type ProviderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(client *postgres.Client) repositories.ProviderRepository {
	return &ProviderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func providerRecord(p *entities.Provider) goqu.Record {
	return goqu.Record{
		"name":                   p.Name,
		"service_types":          pq.Array(nonNil(p.ServiceTypes)),
		"counties_served":        pq.Array(nonNil(p.CountiesServed)),
		"insurance_accepted":     pq.Array(nonNil(p.InsuranceAccepted)),
		"languages_spoken":       pq.Array(nonNil(p.LanguagesSpoken)),
		"accessibility_features": pq.Array(nonNil(p.AccessibilityFeatures)),
		"service_terms":          pq.Array(utils.NewTermSet(p.ServiceTypes).Sorted()),
		"county_terms":           pq.Array(utils.NewTermSet(p.CountiesServed).Sorted()),
		"capacity":               string(p.Capacity),
		"available_slots":        p.AvailableSlots,
		"rating":                 p.Rating,
		"provider_size":          string(p.ProviderSize),
		"is_active":              p.IsActive,
		"updated_at":             p.UpdatedAt,
	}
}

// Create creates a new provider
func (a *ProviderAdapter) Create(ctx context.Context, provider *entities.Provider) error {
	record := providerRecord(provider)
	record["id"] = provider.ID
	record["created_at"] = provider.CreatedAt

	query, args, err := a.db.Insert(providersTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create provider", err)
	}

	return nil
}

// GetByID retrieves a provider by ID
func (a *ProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	query, args, err := a.db.Select(providerColumns...).
		From(providersTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	provider, err := scanProvider(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}

	return provider, nil
}

// GetByIDs retrieves multiple providers by their IDs
func (a *ProviderAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error) {
	if len(ids) == 0 {
		return []*entities.Provider{}, nil
	}

	query, args, err := a.db.Select(providerColumns...).
		From(providersTable).
		Where(goqu.Ex{"id": ids}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryProviders(ctx, query, args)
}

// Update updates a provider
func (a *ProviderAdapter) Update(ctx context.Context, provider *entities.Provider) error {
	provider.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update(providersTable).
		Set(providerRecord(provider)).
		Where(goqu.Ex{"id": provider.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update provider", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", provider.ID))
	}

	return nil
}

// List retrieves providers with filters
func (a *ProviderAdapter) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	ds := a.db.Select(providerColumns...).From(providersTable)

	if filter.ServiceType != "" {
		ds = ds.Where(containsTerm("service_terms", filter.ServiceType))
	}
	if filter.County != "" {
		ds = ds.Where(containsTerm("county_terms", filter.County))
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	ds = ds.Order(goqu.I("name").Asc(), goqu.I("id").Asc()).Limit(uint(limit))
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryProviders(ctx, query, args)
}

// ListCandidates returns active providers that offer the service type in at
// least one of the counties. Matching on the normalized term columns keeps this
// a superset of what the engine's service and county filters accept.
func (a *ProviderAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Provider, error) {
	counties := utils.NewTermSet(filter.Counties).Sorted()
	if utils.NormalizeTerm(filter.ServiceType) == "" || len(counties) == 0 {
		return []*entities.Provider{}, nil
	}

	ds := a.db.Select(providerColumns...).
		From(providersTable).
		Where(
			goqu.Ex{"is_active": true},
			containsTerm("service_terms", filter.ServiceType),
			goqu.L("? && ?", goqu.I("county_terms"), pq.Array(counties)),
		).
		Order(goqu.I("id").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryProviders(ctx, query, args)
}

func (a *ProviderAdapter) queryProviders(ctx context.Context, query string, args []interface{}) ([]*entities.Provider, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query providers", err)
	}
	defer rows.Close()

	providers := make([]*entities.Provider, 0)
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider", err)
		}
		providers = append(providers, provider)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate providers", err)
	}

	return providers, nil
}

func containsTerm(column, value string) exp.LiteralExpression {
	return goqu.L("? @> ?", goqu.I(column), pq.Array([]string{utils.NormalizeTerm(value)}))
}

func scanProvider(row rowScanner) (*entities.Provider, error) {
	provider := &entities.Provider{}
	err := row.Scan(
		&provider.ID,
		&provider.Name,
		pq.Array(&provider.ServiceTypes),
		pq.Array(&provider.CountiesServed),
		pq.Array(&provider.InsuranceAccepted),
		pq.Array(&provider.LanguagesSpoken),
		pq.Array(&provider.AccessibilityFeatures),
		&provider.Capacity,
		&provider.AvailableSlots,
		&provider.Rating,
		&provider.ProviderSize,
		&provider.IsActive,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
