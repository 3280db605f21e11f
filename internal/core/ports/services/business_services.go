package services

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
)

// BusinessSvcFacade defines the business service surface.
type BusinessSvcFacade interface {
	CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, creatorUserID string) (*domain.Business, error)
	GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
	ListBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error)
	UpdateBusiness(ctx context.Context, businessID string, req dto.UpdateBusinessRequest, updaterUserID string) (*domain.Business, error)
	DeactivateBusiness(ctx context.Context, businessID string, actingUserID string) error
}

// VehicleSvcFacade defines the vehicle service surface.
type VehicleSvcFacade interface {
	CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, creatorUserID string) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListVehiclesByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, updaterUserID string) (*domain.Vehicle, error)
	DeactivateVehicle(ctx context.Context, vehicleID string, actingUserID string) error
}

// DriverSvcFacade defines the driver service surface.
type DriverSvcFacade interface {
	CreateDriver(ctx context.Context, req dto.CreateDriverRequest, creatorUserID string) (*domain.Driver, error)
	GetDriverByID(ctx context.Context, driverID string) (*domain.Driver, error)
	ListDriversByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Driver, error)
	DeactivateDriver(ctx context.Context, driverID string, actingUserID string) error
}
