package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for financial transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: transactionService}
}

// registerTransactionRoutes sets up the routes for transaction management.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:transactionID", h.getTransaction)
	}

	rg.GET("/businesses/:businessID/transactions", h.listTransactions)
}

// createTransactionResponse pairs the created transaction with the pending
// payment opened for any collection shortfall.
type createTransactionResponse struct {
	Transaction    *domain.FinancialTransaction `json:"transaction"`
	PendingPayment *dto.PendingPaymentResponse  `json:"pendingPayment,omitempty"`
}

// createTransaction godoc
// @Summary Record a financial transaction
// @Description Records a transaction; a collection shortfall opens a pending payment atomically.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} createTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, pending, err := h.transactionService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transaction"})
		}
		return
	}

	resp := createTransactionResponse{Transaction: txn}
	if pending != nil {
		pendingResp := dto.ToPendingPaymentResponse(pending)
		resp.PendingPayment = &pendingResp
	}
	c.JSON(http.StatusCreated, resp)
}

// transactionDetailResponse pairs a transaction with its cash-movement
// line-item.
type transactionDetailResponse struct {
	Transaction  *domain.FinancialTransaction `json:"transaction"`
	MovementsBox *domain.MovementsBox         `json:"movementsBox,omitempty"`
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transaction"})
		return
	}

	resp := transactionDetailResponse{Transaction: txn}
	movementsBox, err := h.transactionService.GetMovementsBox(c.Request.Context(), transactionID)
	if err == nil {
		resp.MovementsBox = movementsBox
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to load movements box for transaction",
			slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	businessID := c.Param("businessID")
	limit, offset := parsePagination(c)

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}
