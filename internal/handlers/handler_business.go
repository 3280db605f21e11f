package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessHandler handles HTTP requests for businesses, their vehicles and drivers.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
	vehicleService  portssvc.VehicleSvcFacade
	driverService   portssvc.DriverSvcFacade
}

func newBusinessHandler(
	businessService portssvc.BusinessSvcFacade,
	vehicleService portssvc.VehicleSvcFacade,
	driverService portssvc.DriverSvcFacade,
) *businessHandler {
	return &businessHandler{
		businessService: businessService,
		vehicleService:  vehicleService,
		driverService:   driverService,
	}
}

// registerBusinessRoutes sets up the routes for business, vehicle and driver management.
func registerBusinessRoutes(
	rg *gin.RouterGroup,
	businessService portssvc.BusinessSvcFacade,
	vehicleService portssvc.VehicleSvcFacade,
	driverService portssvc.DriverSvcFacade,
) {
	h := newBusinessHandler(businessService, vehicleService, driverService)

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listBusinesses)
		businesses.GET("/:businessID", h.getBusiness)
		businesses.PUT("/:businessID", h.updateBusiness)
		businesses.DELETE("/:businessID", h.deactivateBusiness)

		businesses.GET("/:businessID/vehicles", h.listVehicles)
		businesses.GET("/:businessID/drivers", h.listDrivers)
	}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("/:vehicleID", h.getVehicle)
		vehicles.PUT("/:vehicleID", h.updateVehicle)
		vehicles.DELETE("/:vehicleID", h.deactivateVehicle)
	}

	drivers := rg.Group("/drivers")
	{
		drivers.POST("", h.createDriver)
		drivers.GET("/:driverID", h.getDriver)
		drivers.DELETE("/:driverID", h.deactivateDriver)
	}
}

// createBusiness godoc
// @Summary Create a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} domain.Business
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create business", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create business"})
		return
	}

	c.JSON(http.StatusCreated, business)
}

func (h *businessHandler) getBusiness(c *gin.Context) {
	businessID := c.Param("businessID")

	business, err := h.businessService.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Business not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get business", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve business"})
		return
	}

	c.JSON(http.StatusOK, business)
}

func (h *businessHandler) listBusinesses(c *gin.Context) {
	limit, offset := parsePagination(c)

	businesses, err := h.businessService.ListBusinesses(c.Request.Context(), limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list businesses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list businesses"})
		return
	}

	c.JSON(http.StatusOK, businesses)
}

func (h *businessHandler) updateBusiness(c *gin.Context) {
	businessID := c.Param("businessID")

	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), businessID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Business not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to update business", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update business"})
		return
	}

	c.JSON(http.StatusOK, business)
}

// deactivateBusiness godoc
// @Summary Deactivate a business
// @Description Marks a business inactive. Admin only.
// @Tags businesses
// @Produce json
// @Param businessID path string true "Business ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /businesses/{businessID} [delete]
func (h *businessHandler) deactivateBusiness(c *gin.Context) {
	businessID := c.Param("businessID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.businessService.DeactivateBusiness(c.Request.Context(), businessID, actingUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Administrative role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Business not found"})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to deactivate business", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate business"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *businessHandler) createVehicle(c *gin.Context) {
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Business not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create vehicle", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create vehicle"})
		}
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *businessHandler) getVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicleID")

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vehicle not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get vehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *businessHandler) listVehicles(c *gin.Context) {
	businessID := c.Param("businessID")
	limit, offset := parsePagination(c)

	vehicles, err := h.vehicleService.ListVehiclesByBusiness(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list vehicles", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *businessHandler) updateVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicleID")

	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), vehicleID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vehicle not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to update vehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *businessHandler) deactivateVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicleID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.vehicleService.DeactivateVehicle(c.Request.Context(), vehicleID, actingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vehicle not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to deactivate vehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate vehicle"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *businessHandler) createDriver(c *gin.Context) {
	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Business not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create driver", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create driver"})
		return
	}

	c.JSON(http.StatusCreated, driver)
}

func (h *businessHandler) getDriver(c *gin.Context) {
	driverID := c.Param("driverID")

	driver, err := h.driverService.GetDriverByID(c.Request.Context(), driverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Driver not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get driver", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve driver"})
		return
	}

	c.JSON(http.StatusOK, driver)
}

func (h *businessHandler) listDrivers(c *gin.Context) {
	businessID := c.Param("businessID")
	limit, offset := parsePagination(c)

	drivers, err := h.driverService.ListDriversByBusiness(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list drivers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list drivers"})
		return
	}

	c.JSON(http.StatusOK, drivers)
}

func (h *businessHandler) deactivateDriver(c *gin.Context) {
	driverID := c.Param("driverID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.driverService.DeactivateDriver(c.Request.Context(), driverID, actingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Driver not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to deactivate driver", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate driver"})
		return
	}

	c.Status(http.StatusNoContent)
}
