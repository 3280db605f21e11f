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

// investorHandler handles HTTP requests for investors and their investments.
type investorHandler struct {
	investorService   portssvc.InvestorSvcFacade
	investmentService portssvc.InvestmentSvcFacade
}

func newInvestorHandler(
	investorService portssvc.InvestorSvcFacade,
	investmentService portssvc.InvestmentSvcFacade,
) *investorHandler {
	return &investorHandler{
		investorService:   investorService,
		investmentService: investmentService,
	}
}

// registerInvestorRoutes sets up the routes for investor and investment management.
func registerInvestorRoutes(
	rg *gin.RouterGroup,
	investorService portssvc.InvestorSvcFacade,
	investmentService portssvc.InvestmentSvcFacade,
) {
	h := newInvestorHandler(investorService, investmentService)

	investors := rg.Group("/investors")
	{
		investors.POST("", h.createInvestor)
		investors.GET("", h.listInvestors)
		investors.GET("/:investorID", h.getInvestor)
		investors.DELETE("/:investorID", h.deactivateInvestor)
		investors.GET("/:investorID/investments", h.listInvestments)
	}

	investments := rg.Group("/investments")
	{
		investments.POST("", h.createInvestment)
	}
}

func (h *investorHandler) createInvestor(c *gin.Context) {
	var req dto.CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	investor, err := h.investorService.CreateInvestor(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create investor", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create investor"})
		return
	}

	c.JSON(http.StatusCreated, investor)
}

func (h *investorHandler) getInvestor(c *gin.Context) {
	investorID := c.Param("investorID")

	investor, err := h.investorService.GetInvestorByID(c.Request.Context(), investorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Investor not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get investor", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve investor"})
		return
	}

	c.JSON(http.StatusOK, investor)
}

func (h *investorHandler) listInvestors(c *gin.Context) {
	limit, offset := parsePagination(c)

	investors, err := h.investorService.ListInvestors(c.Request.Context(), limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list investors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list investors"})
		return
	}

	c.JSON(http.StatusOK, investors)
}

// deactivateInvestor godoc
// @Summary Deactivate an investor
// @Description Marks an investor inactive. Admin only.
// @Tags investors
// @Produce json
// @Param investorID path string true "Investor ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /investors/{investorID} [delete]
func (h *investorHandler) deactivateInvestor(c *gin.Context) {
	investorID := c.Param("investorID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.investorService.DeactivateInvestor(c.Request.Context(), investorID, actingUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Administrative role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Investor not found"})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to deactivate investor", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate investor"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// createInvestment godoc
// @Summary Record an investment
// @Description Records a funding event and appends it to the investor's timeline.
// @Tags investments
// @Accept json
// @Produce json
// @Param investment body dto.CreateInvestmentRequest true "Investment details"
// @Success 201 {object} domain.Investment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /investments [post]
func (h *investorHandler) createInvestment(c *gin.Context) {
	var req dto.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	investment, err := h.investmentService.CreateInvestment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to record investment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record investment"})
		return
	}

	c.JSON(http.StatusCreated, investment)
}

func (h *investorHandler) listInvestments(c *gin.Context) {
	investorID := c.Param("investorID")
	limit, offset := parsePagination(c)

	investments, err := h.investmentService.ListInvestmentsByInvestor(c.Request.Context(), investorID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list investments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list investments"})
		return
	}

	c.JSON(http.StatusOK, investments)
}
