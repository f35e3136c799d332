package router

import (
	"github.com/gin-gonic/gin"

	"dealgraph.app/insight/internal/http/handler"
	"dealgraph.app/insight/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		coverageHandler := handler.NewCoverageHandler(services.Coverage())
		CoverageRouter(v1.Group("/coverage"), coverageHandler)

		timelineHandler := handler.NewTimelineHandler(services.Timelines())
		TimelineRouter(v1, timelineHandler)
	}
}
