package router

import (
	"github.com/gin-gonic/gin"

	"dealgraph.app/insight/internal/http/handler"
)

// CoverageRouter sets up the coverage ledger's read-only routes.
func CoverageRouter(rg *gin.RouterGroup, h *handler.CoverageHandler) {
	rg.GET("", h.Report)
	rg.GET("/records", h.Records)
}
