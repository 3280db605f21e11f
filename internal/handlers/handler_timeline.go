package handlers

import (
	"log/slog"
	"net/http"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// timelineHandler handles HTTP requests for timeline events.
type timelineHandler struct {
	timelineService portssvc.TimelineSvcFacade
}

func newTimelineHandler(timelineService portssvc.TimelineSvcFacade) *timelineHandler {
	return &timelineHandler{timelineService: timelineService}
}

// registerTimelineRoutes sets up the routes for timeline events.
func registerTimelineRoutes(rg *gin.RouterGroup, timelineService portssvc.TimelineSvcFacade) {
	h := newTimelineHandler(timelineService)

	timeline := rg.Group("/timeline")
	{
		timeline.POST("/events", h.createEvent)
		timeline.GET("/:ownerKind/:ownerID", h.listEvents)
	}
}

// createEvent godoc
// @Summary Append a timeline event
// @Tags timeline
// @Accept json
// @Produce json
// @Param event body dto.CreateTimelineEventRequest true "Event details"
// @Success 201 {object} domain.TimelineEvent
// @Failure 400 {object} ErrorResponse
// @Router /timeline/events [post]
func (h *timelineHandler) createEvent(c *gin.Context) {
	var req dto.CreateTimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	event, err := h.timelineService.CreateEvent(c.Request.Context(), req, creatorUserID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create timeline event", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create timeline event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// listEvents godoc
// @Summary List an owner's timeline events
// @Tags timeline
// @Produce json
// @Param ownerKind path string true "Owner kind" Enums(BUSINESS, INVESTOR, USER)
// @Param ownerID path string true "Owner ID"
// @Success 200 {array} domain.TimelineEvent
// @Failure 400 {object} ErrorResponse
// @Router /timeline/{ownerKind}/{ownerID} [get]
func (h *timelineHandler) listEvents(c *gin.Context) {
	ownerKind := domain.TimelineOwnerKind(c.Param("ownerKind"))
	switch ownerKind {
	case domain.OwnerBusiness, domain.OwnerInvestor, domain.OwnerUser:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid owner kind"})
		return
	}

	ownerID := c.Param("ownerID")
	limit, offset := parsePagination(c)

	events, err := h.timelineService.ListEventsByOwner(c.Request.Context(), ownerKind, ownerID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list timeline events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list timeline events"})
		return
	}

	c.JSON(http.StatusOK, events)
}
