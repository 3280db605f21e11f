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

// lookupHandler handles HTTP requests for the lookup tables: categories,
// payment methods and transaction states.
type lookupHandler struct {
	lookupService portssvc.LookupSvcFacade
}

func newLookupHandler(lookupService portssvc.LookupSvcFacade) *lookupHandler {
	return &lookupHandler{lookupService: lookupService}
}

// registerLookupRoutes sets up the routes for lookup-table management.
func registerLookupRoutes(rg *gin.RouterGroup, lookupService portssvc.LookupSvcFacade) {
	h := newLookupHandler(lookupService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
	}

	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.createPaymentMethod)
		methods.GET("", h.listPaymentMethods)
	}

	states := rg.Group("/transaction-states")
	{
		states.POST("", h.createTransactionState)
		states.GET("", h.listTransactionStates)
	}
}

func (h *lookupHandler) createCategory(c *gin.Context) {
	var req dto.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	category, err := h.lookupService.CreateCategory(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create category", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *lookupHandler) listCategories(c *gin.Context) {
	categories, err := h.lookupService.ListCategories(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *lookupHandler) createPaymentMethod(c *gin.Context) {
	var req dto.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	method, err := h.lookupService.CreatePaymentMethod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create payment method", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create payment method"})
		return
	}

	c.JSON(http.StatusCreated, method)
}

func (h *lookupHandler) listPaymentMethods(c *gin.Context) {
	methods, err := h.lookupService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list payment methods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payment methods"})
		return
	}

	c.JSON(http.StatusOK, methods)
}

func (h *lookupHandler) createTransactionState(c *gin.Context) {
	var req dto.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	state, err := h.lookupService.CreateTransactionState(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create transaction state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transaction state"})
		return
	}

	c.JSON(http.StatusCreated, state)
}

func (h *lookupHandler) listTransactionStates(c *gin.Context) {
	states, err := h.lookupService.ListTransactionStates(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list transaction states", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transaction states"})
		return
	}

	c.JSON(http.StatusOK, states)
}
