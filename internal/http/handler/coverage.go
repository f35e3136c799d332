package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealgraph.app/insight/internal/coverage"
	"dealgraph.app/insight/internal/http/dto"
	"dealgraph.app/insight/internal/service"
)

type CoverageHandler struct {
	coverageService service.CoverageService
}

func NewCoverageHandler(coverageService service.CoverageService) *CoverageHandler {
	return &CoverageHandler{coverageService: coverageService}
}

// Report returns the aggregate coverage view: per-status record counts,
// email sums, volume percentages, and the remainder-derived not-covered
// volume.
func (h *CoverageHandler) Report(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.coverageService.Report(ctx)
	if err != nil {
		var vErr *coverage.ValidationError
		if errors.As(err, &vErr) {
			slog.WarnContext(ctx, "catalog failed validation", "error", vErr)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to build coverage report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build coverage report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCoverageReportResponse(report))
}

// Records returns the catalog filtered by the status query parameter
// ("all", "covered", "partial", "not_covered"), preserving catalog order.
func (h *CoverageHandler) Records(c *gin.Context) {
	ctx := c.Request.Context()

	selector := c.DefaultQuery("status", coverage.FilterAll)

	records, err := h.coverageService.Records(ctx, selector)
	if err != nil {
		var vErr *coverage.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to list coverage records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coverage records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCoverageRecordsResponse(records))
}
