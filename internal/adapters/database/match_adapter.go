package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

const matchesTable = "referral_matches"

var matchColumns = []interface{}{
	"id", "referral_id", "provider_id", "run_id", "rank", "score",
	"service_score", "location_insurance_score", "availability_score", "preference_score",
	"is_selected", "response", "response_note", "responded_at", "created_at", "updated_at",
}

// matchRow flattens the subscores into their own columns
type matchRow struct {
	entities.MatchRecord
	ServiceScore           float64 `db:"service_score"`
	LocationInsuranceScore float64 `db:"location_insurance_score"`
	AvailabilityScore      float64 `db:"availability_score"`
	PreferenceScore        float64 `db:"preference_score"`
}

func (r *matchRow) toRecord() *entities.MatchRecord {
	record := r.MatchRecord
	record.Subscores = entities.Subscores{
		Service:           r.ServiceScore,
		LocationInsurance: r.LocationInsuranceScore,
		Availability:      r.AvailabilityScore,
		Preference:        r.PreferenceScore,
	}
	return &record
}

// MatchAdapter implements MatchRepository
type MatchAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMatchAdapter creates a new match adapter
func NewMatchAdapter(client *postgres.Client) repositories.MatchRepository {
	return &MatchAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// SaveRun replaces the referral's unselected matches with a new run. A
// provider that is still selected keeps its row and selection; only its
// ranking fields are refreshed.
func (a *MatchAdapter) SaveRun(ctx context.Context, referralID, runID string, records []*entities.MatchRecord) error {
	deleteQuery, deleteArgs, err := a.db.Delete(matchesTable).
		Where(goqu.Ex{"referral_id": referralID, "is_selected": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	rows := make([]interface{}, 0, len(records))
	for _, m := range records {
		rows = append(rows, goqu.Record{
			"id":                       m.ID,
			"referral_id":              referralID,
			"provider_id":              m.ProviderID,
			"run_id":                   runID,
			"rank":                     m.Rank,
			"score":                    m.Score,
			"service_score":            m.Subscores.Service,
			"location_insurance_score": m.Subscores.LocationInsurance,
			"availability_score":       m.Subscores.Availability,
			"preference_score":         m.Subscores.Preference,
			"is_selected":              false,
			"response":                 string(entities.ProviderResponseNone),
			"response_note":            "",
			"created_at":               m.CreatedAt,
			"updated_at":               m.UpdatedAt,
		})
	}

	var insertQuery string
	var insertArgs []interface{}
	if len(rows) > 0 {
		insertQuery, insertArgs, err = a.db.Insert(matchesTable).
			Rows(rows...).
			OnConflict(goqu.DoUpdate("referral_id, provider_id", goqu.Record{
				"run_id":                   goqu.L("EXCLUDED.run_id"),
				"rank":                     goqu.L("EXCLUDED.rank"),
				"score":                    goqu.L("EXCLUDED.score"),
				"service_score":            goqu.L("EXCLUDED.service_score"),
				"location_insurance_score": goqu.L("EXCLUDED.location_insurance_score"),
				"availability_score":       goqu.L("EXCLUDED.availability_score"),
				"preference_score":         goqu.L("EXCLUDED.preference_score"),
				"updated_at":               goqu.L("EXCLUDED.updated_at"),
			})).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
	}

	return a.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return apperrors.NewInternalError("failed to clear previous matches", err)
		}
		if insertQuery == "" {
			return nil
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return apperrors.NewInternalError("failed to save matches", err)
		}
		return nil
	})
}

// ListByReferral returns persisted matches in rank order
func (a *MatchAdapter) ListByReferral(ctx context.Context, referralID string) ([]*entities.MatchRecord, error) {
	query, args, err := a.db.Select(matchColumns...).
		From(matchesTable).
		Where(goqu.Ex{"referral_id": referralID}).
		Order(goqu.I("rank").Asc(), goqu.I("provider_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var rows []matchRow
	if err := a.client.DBX().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list matches", err)
	}

	records := make([]*entities.MatchRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toRecord())
	}
	return records, nil
}

// GetByReferralAndProvider returns one persisted match
func (a *MatchAdapter) GetByReferralAndProvider(ctx context.Context, referralID, providerID string) (*entities.MatchRecord, error) {
	query, args, err := a.db.Select(matchColumns...).
		From(matchesTable).
		Where(goqu.Ex{"referral_id": referralID, "provider_id": providerID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var row matchRow
	err = a.client.DBX().GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider %s is not a match for referral %s", providerID, referralID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get match", err)
	}

	return row.toRecord(), nil
}

// MarkSelected flags one match as selected and clears any earlier selection
func (a *MatchAdapter) MarkSelected(ctx context.Context, referralID, providerID string) error {
	now := time.Now().UTC()

	clearQuery, clearArgs, err := a.db.Update(matchesTable).
		Set(goqu.Record{"is_selected": false, "updated_at": now}).
		Where(goqu.Ex{"referral_id": referralID, "is_selected": true}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	selectQuery, selectArgs, err := a.db.Update(matchesTable).
		Set(goqu.Record{"is_selected": true, "updated_at": now}).
		Where(goqu.Ex{"referral_id": referralID, "provider_id": providerID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return a.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return apperrors.NewInternalError("failed to clear selection", err)
		}
		result, err := tx.ExecContext(ctx, selectQuery, selectArgs...)
		if err != nil {
			return apperrors.NewInternalError("failed to select match", err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return apperrors.NewInternalError("failed to get rows affected", err)
		} else if n == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("provider %s is not a match for referral %s", providerID, referralID))
		}
		return nil
	})
}

// RecordResponse stores the selected provider's answer. A decline releases
// the selection so the next run can rank the provider again.
func (a *MatchAdapter) RecordResponse(ctx context.Context, referralID, providerID string, response entities.ProviderResponse, note string) error {
	now := time.Now().UTC()

	set := goqu.Record{
		"response":      string(response),
		"response_note": note,
		"responded_at":  now,
		"updated_at":    now,
	}
	if response == entities.ProviderResponseDeclined {
		set["is_selected"] = false
	}

	query, args, err := a.db.Update(matchesTable).
		Set(set).
		Where(goqu.Ex{"referral_id": referralID, "provider_id": providerID, "is_selected": true}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to record provider response", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("provider %s is not the selected match for referral %s", providerID, referralID))
	}

	return nil
}

func (a *MatchAdapter) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := a.client.DBX().BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}
