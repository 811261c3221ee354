package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

const referralsTable = "referrals"

var referralColumns = []interface{}{
	"id", "service_type", "urgency", "counties", "insurance_required",
	"languages_required", "accessibility_needs", "provider_size_preference",
	"status", "created_by", "notes", "created_at", "updated_at",
}

// ReferralAdapter implements ReferralRepository
type ReferralAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReferralAdapter creates a new referral adapter
func NewReferralAdapter(client *postgres.Client) repositories.ReferralRepository {
	return &ReferralAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new referral
func (a *ReferralAdapter) Create(ctx context.Context, referral *entities.Referral) error {
	record := goqu.Record{
		"id":                       referral.ID,
		"service_type":             referral.ServiceType,
		"urgency":                  string(referral.Urgency),
		"counties":                 pq.Array(nonNil(referral.Counties)),
		"insurance_required":       pq.Array(nonNil(referral.InsuranceRequired)),
		"languages_required":       pq.Array(nonNil(referral.LanguagesRequired)),
		"accessibility_needs":      pq.Array(nonNil(referral.AccessibilityNeeds)),
		"provider_size_preference": string(referral.ProviderSizePreference),
		"status":                   string(referral.Status),
		"created_by":               referral.CreatedBy,
		"notes":                    referral.Notes,
		"created_at":               referral.CreatedAt,
		"updated_at":               referral.UpdatedAt,
	}

	query, args, err := a.db.Insert(referralsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create referral", err)
	}

	return nil
}

// GetByID retrieves a referral by ID
func (a *ReferralAdapter) GetByID(ctx context.Context, id string) (*entities.Referral, error) {
	query, args, err := a.db.Select(referralColumns...).
		From(referralsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	referral, err := scanReferral(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("referral with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get referral", err)
	}

	return referral, nil
}

// List retrieves referrals with filters, newest first
func (a *ReferralAdapter) List(ctx context.Context, filter repositories.ReferralFilter) ([]*entities.Referral, error) {
	ds := a.db.Select(referralColumns...).From(referralsTable)

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": string(filter.Status)})
	}
	if filter.ServiceType != "" {
		ds = ds.Where(goqu.Ex{"service_type": filter.ServiceType})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	ds = ds.Order(goqu.I("created_at").Desc(), goqu.I("id").Asc()).Limit(uint(limit))
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list referrals", err)
	}
	defer rows.Close()

	referrals := make([]*entities.Referral, 0)
	for rows.Next() {
		referral, err := scanReferral(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan referral", err)
		}
		referrals = append(referrals, referral)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate referrals", err)
	}

	return referrals, nil
}

// UpdateStatus moves a referral from one status to another
func (a *ReferralAdapter) UpdateStatus(ctx context.Context, id string, from, to entities.ReferralStatus) error {
	query, args, err := a.db.Update(referralsTable).
		Set(goqu.Record{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id, "status": string(from)}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update referral status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		// Either the referral is gone or someone else moved it first
		if _, err := a.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.NewConflictError(fmt.Sprintf("referral %s is no longer %s", id, from))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReferral(row rowScanner) (*entities.Referral, error) {
	referral := &entities.Referral{}
	err := row.Scan(
		&referral.ID,
		&referral.ServiceType,
		&referral.Urgency,
		pq.Array(&referral.Counties),
		pq.Array(&referral.InsuranceRequired),
		pq.Array(&referral.LanguagesRequired),
		pq.Array(&referral.AccessibilityNeeds),
		&referral.ProviderSizePreference,
		&referral.Status,
		&referral.CreatedBy,
		&referral.Notes,
		&referral.CreatedAt,
		&referral.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return referral, nil
}

// nonNil keeps NOT NULL array columns from receiving NULL
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
