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

// boxHandler handles HTTP requests for operating boxes and their movements.
type boxHandler struct {
	boxService portssvc.BoxSvcFacade
}

func newBoxHandler(boxService portssvc.BoxSvcFacade) *boxHandler {
	return &boxHandler{boxService: boxService}
}

// registerBoxRoutes sets up the routes for operating box management.
func registerBoxRoutes(rg *gin.RouterGroup, boxService portssvc.BoxSvcFacade) {
	h := newBoxHandler(boxService)

	boxes := rg.Group("/operating-boxes")
	{
		boxes.POST("", h.createBox)
		boxes.GET("", h.listBoxes)
		boxes.GET("/:boxID", h.getBox)
		boxes.GET("/:boxID/balance", h.checkBalance)
		boxes.GET("/:boxID/movements", h.listMovements)
		boxes.POST("/:boxID/adjustments", h.adjustBox)
		boxes.DELETE("/:boxID", h.deactivateBox)
	}
}

// createBox godoc
// @Summary Create an operating box
// @Description Creates a new operating box at balance zero.
// @Tags operating-boxes
// @Accept json
// @Produce json
// @Param box body dto.CreateBoxRequest true "Box details"
// @Success 201 {object} domain.OperatingBox
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /operating-boxes [post]
func (h *boxHandler) createBox(c *gin.Context) {
	var req dto.CreateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	box, err := h.boxService.CreateBox(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Business not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create operating box", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create operating box"})
		return
	}

	c.JSON(http.StatusCreated, box)
}

func (h *boxHandler) getBox(c *gin.Context) {
	boxID := c.Param("boxID")

	box, err := h.boxService.GetBoxByID(c.Request.Context(), boxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Operating box not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get operating box", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve operating box"})
		return
	}

	c.JSON(http.StatusOK, box)
}

func (h *boxHandler) listBoxes(c *gin.Context) {
	limit, offset := parsePagination(c)

	boxes, err := h.boxService.ListBoxes(c.Request.Context(), limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list operating boxes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list operating boxes"})
		return
	}

	c.JSON(http.StatusOK, boxes)
}

// listMovements godoc
// @Summary List a box's movement history
// @Description Returns the box's movements newest first with token-based pagination.
// @Tags operating-boxes
// @Produce json
// @Param boxID path string true "Box ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 404 {object} ErrorResponse
// @Router /operating-boxes/{boxID}/movements [get]
func (h *boxHandler) listMovements(c *gin.Context) {
	boxID := c.Param("boxID")
	limit, _ := parsePagination(c)

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	movements, newToken, err := h.boxService.ListMovements(c.Request.Context(), boxID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Operating box not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list movements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list movements"})
		return
	}

	responses := make([]dto.BoxMovementResponse, len(movements))
	for i := range movements {
		responses[i] = dto.ToBoxMovementResponse(&movements[i])
	}
	c.JSON(http.StatusOK, dto.ListMovementsResponse{Movements: responses, NextToken: newToken})
}

// checkBalance godoc
// @Summary Reconcile a box balance
// @Description Compares the stored balance against the sum of recorded movement amounts.
// @Tags operating-boxes
// @Produce json
// @Param boxID path string true "Box ID"
// @Success 200 {object} dto.BoxBalanceCheck
// @Failure 404 {object} ErrorResponse
// @Router /operating-boxes/{boxID}/balance [get]
func (h *boxHandler) checkBalance(c *gin.Context) {
	boxID := c.Param("boxID")

	check, err := h.boxService.CheckBalance(c.Request.Context(), boxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Operating box not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to reconcile box balance", slog.String("box_id", boxID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reconcile box balance"})
		return
	}

	c.JSON(http.StatusOK, check)
}

// deactivateBox godoc
// @Summary Deactivate an operating box
// @Description Marks a box inactive so it stops funding settlements. Admin only.
// @Tags operating-boxes
// @Produce json
// @Param boxID path string true "Box ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /operating-boxes/{boxID} [delete]
func (h *boxHandler) deactivateBox(c *gin.Context) {
	boxID := c.Param("boxID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.boxService.DeactivateBox(c.Request.Context(), boxID, actingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Administrative role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Operating box not found"})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to deactivate operating box", slog.String("box_id", boxID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate operating box"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// adjustBox godoc
// @Summary Adjust a box balance
// @Description Atomically applies a signed adjustment and records the matching movement. Admin only.
// @Tags operating-boxes
// @Accept json
// @Produce json
// @Param boxID path string true "Box ID"
// @Param adjustment body dto.AdjustBoxRequest true "Adjustment details"
// @Success 200 {object} dto.BoxMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /operating-boxes/{boxID}/adjustments [post]
func (h *boxHandler) adjustBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	boxID := c.Param("boxID")

	var req dto.AdjustBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.boxService.AdjustBox(c.Request.Context(), boxID, req, actingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Administrative role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Operating box not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to adjust operating box", slog.String("box_id", boxID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to adjust operating box"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBoxMovementResponse(movement))
}
