package database_test

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/database"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

var providerRowColumns = []string{
	"id", "name", "service_types", "counties_served", "insurance_accepted",
	"languages_spoken", "accessibility_features", "capacity", "available_slots",
	"rating", "provider_size", "is_active", "created_at", "updated_at",
}

func providerRow(id string) []driver.Value {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "Provider " + id, "{\"Mental Health Therapy\"}", "{Hennepin}", "{Medicaid,BlueCross}",
		"{English,Somali}", "{}", "high", 4, 4.6, "small", true, created, created,
	}
}

func TestProviderAdapter_Create_WritesNormalizedTerms(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectExec(`INSERT INTO "providers" .*'\{"mental health therapy"\}'`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Create(context.Background(), &entities.Provider{
		ID:             "p-1",
		Name:           "Northside Counseling",
		ServiceTypes:   []string{"Mental Health Therapy"},
		CountiesServed: []string{"Hennepin"},
		Capacity:       entities.CapacityHigh,
		AvailableSlots: 3,
		IsActive:       true,
	})

	require.NoError(t, err)
}

func TestProviderAdapter_GetByID(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "providers" WHERE ("id" = 'p-1')`)).
		WillReturnRows(sqlmock.NewRows(providerRowColumns).AddRow(providerRow("p-1")...))

	provider, err := adapter.GetByID(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"Mental Health Therapy"}, provider.ServiceTypes)
	assert.Equal(t, []string{"Medicaid", "BlueCross"}, provider.InsuranceAccepted)
	assert.Equal(t, entities.CapacityHigh, provider.Capacity)
	assert.Equal(t, 4, provider.AvailableSlots)
	assert.Equal(t, entities.ProviderSizeSmall, provider.ProviderSize)
	assert.True(t, provider.IsActive)
}

func TestProviderAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectQuery(`FROM "providers"`).WillReturnRows(sqlmock.NewRows(providerRowColumns))

	_, err := adapter.GetByID(context.Background(), "nope")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestProviderAdapter_GetByIDs(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("id" IN ('p-1', 'p-2'))`)).
		WillReturnRows(sqlmock.NewRows(providerRowColumns).AddRow(providerRow("p-1")...).AddRow(providerRow("p-2")...))

	providers, err := adapter.GetByIDs(context.Background(), []string{"p-1", "p-2"})

	require.NoError(t, err)
	assert.Len(t, providers, 2)
}

func TestProviderAdapter_GetByIDs_Empty(t *testing.T) {
	client, _ := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	providers, err := adapter.GetByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestProviderAdapter_Update_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectExec(`UPDATE "providers" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Update(context.Background(), &entities.Provider{ID: "p-1", Name: "Gone"})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestProviderAdapter_List_Filters(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)
	active := true

	mock.ExpectQuery(`"service_terms" @> '\{"housing"\}'.*"county_terms" @> '\{"ramsey"\}'.*"is_active" IS TRUE`).
		WillReturnRows(sqlmock.NewRows(providerRowColumns).AddRow(providerRow("p-1")...))

	providers, err := adapter.List(context.Background(), repositories.ProviderFilter{
		ServiceType: " Housing ",
		County:      "Ramsey",
		IsActive:    &active,
	})

	require.NoError(t, err)
	assert.Len(t, providers, 1)
}

func TestProviderAdapter_ListCandidates(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	mock.ExpectQuery(`"service_terms" @> '\{"mental health therapy"\}'.*"county_terms" && '\{"hennepin","ramsey"\}'.*ORDER BY "id" ASC LIMIT 500`).
		WillReturnRows(sqlmock.NewRows(providerRowColumns).AddRow(providerRow("p-1")...))

	providers, err := adapter.ListCandidates(context.Background(), repositories.CandidateFilter{
		ServiceType: "Mental Health Therapy",
		Counties:    []string{"Ramsey", "Hennepin", "hennepin"},
		Limit:       500,
	})

	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "p-1", providers[0].ID)
}

func TestProviderAdapter_ListCandidates_NothingToMatch(t *testing.T) {
	client, _ := newMockClient(t)
	adapter := database.NewProviderAdapter(client)

	providers, err := adapter.ListCandidates(context.Background(), repositories.CandidateFilter{ServiceType: "Housing"})

	require.NoError(t, err)
	assert.Empty(t, providers)
}
