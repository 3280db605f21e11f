package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/flotaops/fleet-finance-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessRepository struct {
	BaseRepository
}

func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepository {
	return &PgxBusinessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessRepository = (*PgxBusinessRepository)(nil)

func toDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		TaxID:       m.TaxID,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const businessColumns = `business_id, name, tax_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveBusiness inserts a new business. A tax ID collision surfaces as apperrors.ErrDuplicate.
func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	query := `
		INSERT INTO businesses (business_id, name, tax_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		business.BusinessID,
		business.Name,
		business.TaxID,
		business.Description,
		business.IsActive,
		business.CreatedAt,
		business.CreatedBy,
		business.LastUpdatedAt,
		business.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: business with tax ID %s already exists", apperrors.ErrDuplicate, business.TaxID)
		}
		return fmt.Errorf("failed to save business %s: %w", business.BusinessID, err)
	}
	return nil
}

// FindBusinessByID retrieves a business by ID.
func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1;`
	var m models.Business
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(
		&m.BusinessID,
		&m.Name,
		&m.TaxID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business by ID %s: %w", businessID, err)
	}
	business := toDomainBusiness(m)
	return &business, nil
}

// ListBusinesses retrieves a paginated list of businesses.
func (r *PgxBusinessRepository) ListBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + businessColumns + `
		FROM businesses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		var m models.Business
		if err := rows.Scan(
			&m.BusinessID,
			&m.Name,
			&m.TaxID,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, toDomainBusiness(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating business rows: %w", err)
	}
	return businesses, nil
}

// UpdateBusiness updates a business's mutable details.
func (r *PgxBusinessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	query := `
		UPDATE businesses
		SET name = $2, tax_id = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE business_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		business.BusinessID,
		business.Name,
		business.TaxID,
		business.Description,
		business.IsActive,
		business.LastUpdatedAt,
		business.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update business %s: %w", business.BusinessID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("business " + business.BusinessID + " not found for update")
	}
	return nil
}

// DeactivateBusiness marks a business as inactive.
func (r *PgxBusinessRepository) DeactivateBusiness(ctx context.Context, businessID string, userID string, now time.Time) error {
	query := `
		UPDATE businesses
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE business_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, businessID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate business %s: %w", businessID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("business " + businessID + " not found for deactivation")
	}
	return nil
}
