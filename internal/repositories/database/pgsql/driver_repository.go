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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDriverRepository struct {
	BaseRepository
}

func newPgxDriverRepository(pool *pgxpool.Pool) portsrepo.DriverRepository {
	return &PgxDriverRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DriverRepository = (*PgxDriverRepository)(nil)

func toDomainDriver(m models.Driver) domain.Driver {
	return domain.Driver{
		DriverID:      m.DriverID,
		BusinessID:    m.BusinessID,
		Name:          m.Name,
		LicenseNumber: m.LicenseNumber,
		Phone:         m.Phone,
		IsActive:      m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const driverColumns = `driver_id, business_id, name, license_number, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveDriver inserts a new driver.
func (r *PgxDriverRepository) SaveDriver(ctx context.Context, driver domain.Driver) error {
	query := `
		INSERT INTO drivers (driver_id, business_id, name, license_number, phone, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		driver.DriverID,
		driver.BusinessID,
		driver.Name,
		driver.LicenseNumber,
		driver.Phone,
		driver.IsActive,
		driver.CreatedAt,
		driver.CreatedBy,
		driver.LastUpdatedAt,
		driver.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save driver %s: %w", driver.DriverID, err)
	}
	return nil
}

// FindDriverByID retrieves a driver by ID.
func (r *PgxDriverRepository) FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE driver_id = $1;`
	var m models.Driver
	err := r.Pool.QueryRow(ctx, query, driverID).Scan(
		&m.DriverID,
		&m.BusinessID,
		&m.Name,
		&m.LicenseNumber,
		&m.Phone,
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
		return nil, fmt.Errorf("failed to find driver by ID %s: %w", driverID, err)
	}
	driver := toDomainDriver(m)
	return &driver, nil
}

// ListDriversByBusiness retrieves a paginated list of a business's drivers.
func (r *PgxDriverRepository) ListDriversByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Driver, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers for business %s: %w", businessID, err)
	}
	defer rows.Close()

	drivers := []domain.Driver{}
	for rows.Next() {
		var m models.Driver
		if err := rows.Scan(
			&m.DriverID,
			&m.BusinessID,
			&m.Name,
			&m.LicenseNumber,
			&m.Phone,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan driver row: %w", err)
		}
		drivers = append(drivers, toDomainDriver(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating driver rows: %w", err)
	}
	return drivers, nil
}

// UpdateDriver updates a driver's mutable details.
func (r *PgxDriverRepository) UpdateDriver(ctx context.Context, driver domain.Driver) error {
	query := `
		UPDATE drivers
		SET name = $2, license_number = $3, phone = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE driver_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		driver.DriverID,
		driver.Name,
		driver.LicenseNumber,
		driver.Phone,
		driver.IsActive,
		driver.LastUpdatedAt,
		driver.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update driver %s: %w", driver.DriverID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("driver " + driver.DriverID + " not found for update")
	}
	return nil
}

// DeactivateDriver marks a driver as inactive.
func (r *PgxDriverRepository) DeactivateDriver(ctx context.Context, driverID string, userID string, now time.Time) error {
	query := `
		UPDATE drivers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE driver_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, driverID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate driver %s: %w", driverID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("driver " + driverID + " not found for deactivation")
	}
	return nil
}
