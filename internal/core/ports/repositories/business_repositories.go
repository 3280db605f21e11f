package repositories

import (
	"context"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
)

// BusinessRepository defines persistence operations for businesses.
type BusinessRepository interface {
	SaveBusiness(ctx context.Context, business domain.Business) error
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
	ListBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error)
	UpdateBusiness(ctx context.Context, business domain.Business) error
	DeactivateBusiness(ctx context.Context, businessID string, userID string, now time.Time) error
}

// VehicleRepository defines persistence operations for vehicles.
type VehicleRepository interface {
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error
	FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehiclesByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error
	DeactivateVehicle(ctx context.Context, vehicleID string, userID string, now time.Time) error
}

// DriverRepository defines persistence operations for drivers.
type DriverRepository interface {
	SaveDriver(ctx context.Context, driver domain.Driver) error
	FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error)
	ListDriversByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Driver, error)
	UpdateDriver(ctx context.Context, driver domain.Driver) error
	DeactivateDriver(ctx context.Context, driverID string, userID string, now time.Time) error
}
