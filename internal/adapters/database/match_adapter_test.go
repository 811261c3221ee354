package database_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/database"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

var matchRowColumns = []string{
	"id", "referral_id", "provider_id", "run_id", "rank", "score",
	"service_score", "location_insurance_score", "availability_score", "preference_score",
	"is_selected", "response", "response_note", "responded_at", "created_at", "updated_at",
}

func matchRow(id, providerID string, rank, score int) []driver.Value {
	created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "ref-1", providerID, "run-1", rank, score,
		100.0, 100.0, 80.0, 50.0,
		false, "", "", nil, created, created,
	}
}

func TestMatchAdapter_SaveRun(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "referral_matches" WHERE .*"is_selected" IS FALSE.*"referral_id" = 'ref-1'`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO "referral_matches" .*'run-2'.* ON CONFLICT \(referral_id, provider_id\) DO UPDATE SET `).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := adapter.SaveRun(context.Background(), "ref-1", "run-2", []*entities.MatchRecord{
		{ID: "m-1", ProviderID: "p-1", Rank: 1, Score: 97, CreatedAt: now, UpdatedAt: now},
		{ID: "m-2", ProviderID: "p-2", Rank: 2, Score: 90, CreatedAt: now, UpdatedAt: now},
	})

	require.NoError(t, err)
}

func TestMatchAdapter_SaveRun_AfterDecline(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)
	now := time.Now().UTC()

	// p-1 declined in the previous run and is ranked again
	mock.ExpectExec(`UPDATE "referral_matches" SET "is_selected"=FALSE,"responded_at"=.*"response"='declined'.* WHERE .*"is_selected" IS TRUE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "referral_matches" WHERE .*"is_selected" IS FALSE`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "referral_matches" .*'p-1'.*'run-3'.* ON CONFLICT \(referral_id, provider_id\) DO UPDATE SET .*"rank"=EXCLUDED\.rank.*"run_id"=EXCLUDED\.run_id`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	require.NoError(t, adapter.RecordResponse(ctx, "ref-1", "p-1", entities.ProviderResponseDeclined, "waitlist full"))
	err := adapter.SaveRun(ctx, "ref-1", "run-3", []*entities.MatchRecord{
		{ID: "m-3", ProviderID: "p-1", Rank: 1, Score: 88, CreatedAt: now, UpdatedAt: now},
	})

	require.NoError(t, err)
}

func TestMatchAdapter_SaveRun_RollsBackOnInsertFailure(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "referral_matches"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "referral_matches"`).WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	err := adapter.SaveRun(context.Background(), "ref-1", "run-2", []*entities.MatchRecord{
		{ID: "m-1", ProviderID: "p-1", Rank: 1, Score: 97},
	})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestMatchAdapter_ListByReferral(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectQuery(`FROM "referral_matches" WHERE \("referral_id" = 'ref-1'\) ORDER BY "rank" ASC, "provider_id" ASC`).
		WillReturnRows(sqlmock.NewRows(matchRowColumns).
			AddRow(matchRow("m-1", "p-1", 1, 97)...).
			AddRow(matchRow("m-2", "p-2", 2, 90)...))

	records, err := adapter.ListByReferral(context.Background(), "ref-1")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "p-1", records[0].ProviderID)
	assert.Equal(t, 97, records[0].Score)
	assert.Equal(t, entities.Subscores{Service: 100, LocationInsurance: 100, Availability: 80, Preference: 50}, records[0].Subscores)
	assert.Nil(t, records[0].RespondedAt)
}

func TestMatchAdapter_GetByReferralAndProvider_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectQuery(`FROM "referral_matches"`).WillReturnRows(sqlmock.NewRows(matchRowColumns))

	_, err := adapter.GetByReferralAndProvider(context.Background(), "ref-1", "p-9")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestMatchAdapter_MarkSelected(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "referral_matches" SET "is_selected"=FALSE`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "referral_matches" SET "is_selected"=TRUE.*"provider_id" = 'p-2'`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, adapter.MarkSelected(context.Background(), "ref-1", "p-2"))
}

func TestMatchAdapter_MarkSelected_UnknownProvider(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "referral_matches"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "referral_matches"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := adapter.MarkSelected(context.Background(), "ref-1", "p-9")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestMatchAdapter_RecordResponse(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectExec(`UPDATE "referral_matches" SET "is_selected"=FALSE,"responded_at"=.*"response"='declined'.* WHERE .*"is_selected" IS TRUE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.RecordResponse(context.Background(), "ref-1", "p-1", entities.ProviderResponseDeclined, "no bilingual staff")

	require.NoError(t, err)
}

func TestMatchAdapter_RecordResponse_AcceptKeepsSelection(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectExec(`UPDATE "referral_matches" SET "responded_at"=.*"response"='accepted'`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.RecordResponse(context.Background(), "ref-1", "p-1", entities.ProviderResponseAccepted, "")

	require.NoError(t, err)
}

func TestMatchAdapter_RecordResponse_NotSelected(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewMatchAdapter(client)

	mock.ExpectExec(`UPDATE "referral_matches"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.RecordResponse(context.Background(), "ref-1", "p-1", entities.ProviderResponseAccepted, "")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
