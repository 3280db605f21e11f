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

type PgxVehicleRepository struct {
	BaseRepository
}

func newPgxVehicleRepository(pool *pgxpool.Pool) portsrepo.VehicleRepository {
	return &PgxVehicleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VehicleRepository = (*PgxVehicleRepository)(nil)

func toDomainVehicle(m models.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		VehicleID:  m.VehicleID,
		BusinessID: m.BusinessID,
		Plate:      m.Plate,
		Make:       m.Make,
		Model:      m.Model,
		ModelYear:  m.ModelYear,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const vehicleColumns = `vehicle_id, business_id, plate, make, model, model_year, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveVehicle inserts a new vehicle. A plate collision surfaces as apperrors.ErrDuplicate.
func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (vehicle_id, business_id, plate, make, model, model_year, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		vehicle.VehicleID,
		vehicle.BusinessID,
		vehicle.Plate,
		vehicle.Make,
		vehicle.Model,
		vehicle.ModelYear,
		vehicle.IsActive,
		vehicle.CreatedAt,
		vehicle.CreatedBy,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: vehicle with plate %s already exists", apperrors.ErrDuplicate, vehicle.Plate)
		}
		return fmt.Errorf("failed to save vehicle %s: %w", vehicle.VehicleID, err)
	}
	return nil
}

// FindVehicleByID retrieves a vehicle by ID.
func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1;`
	var m models.Vehicle
	err := r.Pool.QueryRow(ctx, query, vehicleID).Scan(
		&m.VehicleID,
		&m.BusinessID,
		&m.Plate,
		&m.Make,
		&m.Model,
		&m.ModelYear,
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
		return nil, fmt.Errorf("failed to find vehicle by ID %s: %w", vehicleID, err)
	}
	vehicle := toDomainVehicle(m)
	return &vehicle, nil
}

// ListVehiclesByBusiness retrieves a paginated list of a business's vehicles.
func (r *PgxVehicleRepository) ListVehiclesByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Vehicle, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles for business %s: %w", businessID, err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var m models.Vehicle
		if err := rows.Scan(
			&m.VehicleID,
			&m.BusinessID,
			&m.Plate,
			&m.Make,
			&m.Model,
			&m.ModelYear,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, toDomainVehicle(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

// UpdateVehicle updates a vehicle's mutable details.
func (r *PgxVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET plate = $2, make = $3, model = $4, model_year = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE vehicle_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		vehicle.VehicleID,
		vehicle.Plate,
		vehicle.Make,
		vehicle.Model,
		vehicle.ModelYear,
		vehicle.IsActive,
		vehicle.LastUpdatedAt,
		vehicle.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s: %w", vehicle.VehicleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("vehicle " + vehicle.VehicleID + " not found for update")
	}
	return nil
}

// DeactivateVehicle marks a vehicle as inactive.
func (r *PgxVehicleRepository) DeactivateVehicle(ctx context.Context, vehicleID string, userID string, now time.Time) error {
	query := `
		UPDATE vehicles
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE vehicle_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, vehicleID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate vehicle %s: %w", vehicleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("vehicle " + vehicleID + " not found for deactivation")
	}
	return nil
}
