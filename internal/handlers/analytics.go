package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/middleware"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/response"
	"github.com/taskplatform/task-platform-api/internal/services"
)

// AnalyticsHandler handles workload aggregates and CSV export.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Summary handles GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	summary, err := h.analyticsService.GetSummary(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, summary)
}

// Trends handles GET /api/analytics/trends
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid days")
			return
		}
		days = parsed
	}

	var assigneeID *uuid.UUID
	if raw := c.Query("assignee"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid assignee id")
			return
		}
		assigneeID = &id
	}

	series, err := h.analyticsService.GetTrends(actor, days, assigneeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, series)
}

// Export handles GET /api/analytics/export. The export is unscoped: any
// authenticated caller gets the full non-deleted task list, subject only to
// the query filters.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		if !s.Valid() {
			response.BadRequest(c, "invalid status")
			return
		}
		status = &s
	}
	var assigneeID *uuid.UUID
	if raw := c.Query("assignee"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid assignee id")
			return
		}
		assigneeID = &id
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="tasks-export.csv"`)
	if err := h.analyticsService.WriteCSV(c.Writer, status, assigneeID); err != nil {
		response.InternalError(c, "")
		return
	}
}
