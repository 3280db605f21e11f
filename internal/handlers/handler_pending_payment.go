package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pendingPaymentHandler handles HTTP requests for pending payments.
type pendingPaymentHandler struct {
	paymentService portssvc.PendingPaymentSvcFacade
}

func newPendingPaymentHandler(paymentService portssvc.PendingPaymentSvcFacade) *pendingPaymentHandler {
	return &pendingPaymentHandler{paymentService: paymentService}
}

// RegisterPendingPaymentRoutes sets up the routes for pending payment management.
func RegisterPendingPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PendingPaymentSvcFacade) {
	h := newPendingPaymentHandler(paymentService)

	payments := rg.Group("/pending-payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/process", h.processPayment)
		payments.POST("/:paymentID/cancel", h.cancelPayment)
	}
}

// createPayment godoc
// @Summary Open a pending payment
// @Description Opens a pending payment by hand, outside the transaction shortfall flow.
// @Tags pending-payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePendingPaymentRequest true "Payment details"
// @Success 201 {object} dto.PendingPaymentResponse
// @Failure 400 {object} ErrorResponse
// @Router /pending-payments [post]
func (h *pendingPaymentHandler) createPayment(c *gin.Context) {
	var req dto.CreatePendingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to open pending payment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to open pending payment"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToPendingPaymentResponse(payment))
}

// processPayment godoc
// @Summary Settle a pending payment
// @Description Drives a payment from PENDING to PAID, debiting the resolved operating box atomically. Admin only.
// @Tags pending-payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Payment no longer pending, or insufficient funds"
// @Failure 500 {object} ErrorResponse
// @Router /pending-payments/{paymentID}/process [post]
func (h *pendingPaymentHandler) processPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.paymentService.Settle(c.Request.Context(), paymentID, actingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Administrative role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			// The message carries the current balance and the required amount.
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrPersistence):
			logger.Error("Settlement transaction failed",
				slog.String("payment_id", paymentID),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Settlement could not be persisted"})
		default:
			logger.Error("Failed to settle pending payment",
				slog.String("payment_id", paymentID),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to settle pending payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(result))
}

// cancelPayment godoc
// @Summary Cancel a pending payment
// @Description Drives a payment from PENDING to CANCELLED without touching any box. Admin only.
// @Tags pending-payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Payment no longer pending"
// @Router /pending-payments/{paymentID}/cancel [post]
func (h *pendingPaymentHandler) cancelPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.Cancel(c.Request.Context(), paymentID, actingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Administrative role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to cancel pending payment",
				slog.String("payment_id", paymentID),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to cancel pending payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Status: "success",
		Data:   gin.H{"pending_payment": dto.ToPendingPaymentResponse(payment)},
	})
}

func (h *pendingPaymentHandler) getPayment(c *gin.Context) {
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Pending payment not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get pending payment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve pending payment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPendingPaymentResponse(payment))
}

// listPayments godoc
// @Summary List pending payments
// @Tags pending-payments
// @Produce json
// @Param businessID query string false "Filter by business"
// @Param driverID query string false "Filter by driver"
// @Param status query string false "Filter by status" Enums(PENDING, PAID, CANCELLED)
// @Param from query string false "Created at or after (RFC3339)"
// @Param to query string false "Created at or before (RFC3339)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.PendingPaymentResponse
// @Failure 400 {object} ErrorResponse
// @Router /pending-payments [get]
func (h *pendingPaymentHandler) listPayments(c *gin.Context) {
	limit, offset := parsePagination(c)
	filter := portsrepo.PendingPaymentFilter{Limit: limit, Offset: offset}

	if v := c.Query("businessID"); v != "" {
		filter.BusinessID = &v
	}
	if v := c.Query("driverID"); v != "" {
		filter.DriverID = &v
	}
	if v := c.Query("status"); v != "" {
		status := domain.PendingPaymentStatus(v)
		switch status {
		case domain.PaymentPending, domain.PaymentPaid, domain.PaymentCancelled:
			filter.Status = &status
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status filter"})
			return
		}
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from timestamp"})
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to timestamp"})
			return
		}
		filter.To = &to
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list pending payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list pending payments"})
		return
	}

	responses := make([]dto.PendingPaymentResponse, len(payments))
	for i := range payments {
		responses[i] = dto.ToPendingPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, responses)
}
