package router

import (
	"github.com/gin-gonic/gin"

	"dealgraph.app/insight/internal/http/handler"
)

// TimelineRouter sets up timeline fetch and inspection routes.
func TimelineRouter(rg *gin.RouterGroup, h *handler.TimelineHandler) {
	rg.GET("/projects/:project/timeline", h.Get)

	inspections := rg.Group("/inspections")
	{
		inspections.POST("", h.StartInspection)
		inspections.GET("/current", h.CurrentInspection)
	}
}
