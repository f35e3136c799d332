package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealgraph.app/insight/common/id"
	"dealgraph.app/insight/common/logger"
	"dealgraph.app/insight/internal/http/dto"
	"dealgraph.app/insight/internal/service"
	"dealgraph.app/insight/internal/timeline"
)

type TimelineHandler struct {
	timelineService service.TimelineService
}

func NewTimelineHandler(timelineService service.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

// Get fetches a project's timeline synchronously. An absent project is a
// recoverable 404 with a specific message; any other backend failure is a
// generic 502.
func (h *TimelineHandler) Get(c *gin.Context) {
	project := c.Param("project")
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
		Project:   logger.Ptr(project),
		Component: "insight.http.timeline",
	})

	tl, err := h.timelineService.Fetch(ctx, project)
	if err != nil {
		switch {
		case errors.Is(err, timeline.ErrProjectNotFound):
			slog.InfoContext(ctx, "project not in knowledge base", "project", project)
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		default:
			slog.ErrorContext(ctx, "timeline fetch failed", "project", project, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch timeline"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineResponse(tl))
}

// StartInspection begins a lifecycle-guarded asynchronous fetch. Starting a
// new inspection while one is loading supersedes it; the superseded result
// is discarded when it lands.
func (h *TimelineHandler) StartInspection(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StartInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid inspection request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inspectionID := id.New()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Project:      logger.Ptr(req.Project),
		InspectionID: logger.Ptr(inspectionID),
	})

	generation := h.timelineService.Inspect(ctx, req.Project)
	slog.InfoContext(ctx, "inspection started", "generation", generation)

	c.JSON(http.StatusAccepted, gin.H{
		"inspection_id": inspectionID,
		"generation":    generation,
		"state":         string(timeline.StateLoading),
	})
}

// CurrentInspection reports the inspection session's current state and
// payload.
func (h *TimelineHandler) CurrentInspection(c *gin.Context) {
	snap := h.timelineService.Current()
	c.JSON(http.StatusOK, dto.ToInspectionResponse(snap))
}
