package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/google/uuid"
)

type businessService struct {
	businessRepo portsrepo.BusinessRepository
	authorizer   portssvc.AdminAuthorizerSvc
}

// NewBusinessService creates a new business service.
func NewBusinessService(businessRepo portsrepo.BusinessRepository, authorizer portssvc.AdminAuthorizerSvc) portssvc.BusinessSvcFacade {
	return &businessService{businessRepo: businessRepo, authorizer: authorizer}
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

func (s *businessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, creatorUserID string) (*domain.Business, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	business := domain.Business{
		BusinessID:  uuid.NewString(),
		Name:        req.Name,
		TaxID:       req.TaxID,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		logger.Error("Failed to save business", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Business created", slog.String("business_id", business.BusinessID))
	return &business, nil
}

func (s *businessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	return s.businessRepo.FindBusinessByID(ctx, businessID)
}

func (s *businessService) ListBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	return s.businessRepo.ListBusinesses(ctx, limit, offset)
}

func (s *businessService) UpdateBusiness(ctx context.Context, businessID string, req dto.UpdateBusinessRequest, updaterUserID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.TaxID != nil {
		business.TaxID = *req.TaxID
	}
	if req.Description != nil {
		business.Description = *req.Description
	}
	business.LastUpdatedAt = time.Now()
	business.LastUpdatedBy = updaterUserID

	if err := s.businessRepo.UpdateBusiness(ctx, *business); err != nil {
		return nil, err
	}
	return business, nil
}

// DeactivateBusiness marks a business inactive. Admin only.
func (s *businessService) DeactivateBusiness(ctx context.Context, businessID string, actingUserID string) error {
	if err := s.authorizer.RequireAdmin(ctx, actingUserID); err != nil {
		return err
	}
	return s.businessRepo.DeactivateBusiness(ctx, businessID, actingUserID, time.Now())
}

type vehicleService struct {
	vehicleRepo  portsrepo.VehicleRepository
	businessRepo portsrepo.BusinessRepository
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(vehicleRepo portsrepo.VehicleRepository, businessRepo portsrepo.BusinessRepository) portssvc.VehicleSvcFacade {
	return &vehicleService{vehicleRepo: vehicleRepo, businessRepo: businessRepo}
}

var _ portssvc.VehicleSvcFacade = (*vehicleService)(nil)

func (s *vehicleService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, creatorUserID string) (*domain.Vehicle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The owning business must exist before a vehicle can reference it.
	if _, err := s.businessRepo.FindBusinessByID(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	now := time.Now()
	vehicle := domain.Vehicle{
		VehicleID:  uuid.NewString(),
		BusinessID: req.BusinessID,
		Plate:      req.Plate,
		Make:       req.Make,
		Model:      req.Model,
		ModelYear:  req.ModelYear,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.vehicleRepo.SaveVehicle(ctx, vehicle); err != nil {
		logger.Error("Failed to save vehicle", slog.String("plate", req.Plate), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Vehicle created", slog.String("vehicle_id", vehicle.VehicleID), slog.String("business_id", vehicle.BusinessID))
	return &vehicle, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
}

func (s *vehicleService) ListVehiclesByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListVehiclesByBusiness(ctx, businessID, limit, offset)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req dto.UpdateVehicleRequest, updaterUserID string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Plate != nil {
		vehicle.Plate = *req.Plate
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.ModelYear != nil {
		vehicle.ModelYear = *req.ModelYear
	}
	vehicle.LastUpdatedAt = time.Now()
	vehicle.LastUpdatedBy = updaterUserID

	if err := s.vehicleRepo.UpdateVehicle(ctx, *vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) DeactivateVehicle(ctx context.Context, vehicleID string, actingUserID string) error {
	return s.vehicleRepo.DeactivateVehicle(ctx, vehicleID, actingUserID, time.Now())
}

type driverService struct {
	driverRepo   portsrepo.DriverRepository
	businessRepo portsrepo.BusinessRepository
}

// NewDriverService creates a new driver service.
func NewDriverService(driverRepo portsrepo.DriverRepository, businessRepo portsrepo.BusinessRepository) portssvc.DriverSvcFacade {
	return &driverService{driverRepo: driverRepo, businessRepo: businessRepo}
}

var _ portssvc.DriverSvcFacade = (*driverService)(nil)

func (s *driverService) CreateDriver(ctx context.Context, req dto.CreateDriverRequest, creatorUserID string) (*domain.Driver, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.businessRepo.FindBusinessByID(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	now := time.Now()
	driver := domain.Driver{
		DriverID:      uuid.NewString(),
		BusinessID:    req.BusinessID,
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.driverRepo.SaveDriver(ctx, driver); err != nil {
		logger.Error("Failed to save driver", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Driver created", slog.String("driver_id", driver.DriverID), slog.String("business_id", driver.BusinessID))
	return &driver, nil
}

func (s *driverService) GetDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	return s.driverRepo.FindDriverByID(ctx, driverID)
}

func (s *driverService) ListDriversByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Driver, error) {
	return s.driverRepo.ListDriversByBusiness(ctx, businessID, limit, offset)
}

func (s *driverService) DeactivateDriver(ctx context.Context, driverID string, actingUserID string) error {
	return s.driverRepo.DeactivateDriver(ctx, driverID, actingUserID, time.Now())
}
