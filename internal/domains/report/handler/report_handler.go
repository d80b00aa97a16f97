package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/report/service"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new report handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Summary handles GET /api/v1/reports/summary
func (h *Handler) Summary(c *gin.Context) {
	report, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to build summary report")
		return
	}

	response.Success(c, http.StatusOK, "Summary report generated", report)
}

// DepartmentMetrics handles GET /api/v1/reports/departments
func (h *Handler) DepartmentMetrics(c *gin.Context) {
	metrics, err := h.service.DepartmentMetrics(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to build department metrics")
		return
	}

	response.Success(c, http.StatusOK, "Department metrics generated", metrics)
}

// ExportBorrowRecords handles GET /api/v1/reports/borrow-records/export.
// Optional from/to query params bound the period; default is the last
// 30 days.
func (h *Handler) ExportBorrowRecords(c *gin.Context) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(c, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(c, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		to = parsed
	}

	file, err := h.service.ExportBorrowRecords(c.Request.Context(), from, to)
	if err != nil {
		response.InternalServerError(c, "Failed to export borrow records")
		return
	}

	filename := fmt.Sprintf("borrow-records-%s.xlsx", now.Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := file.Write(c.Writer); err != nil {
		logger.Error("failed to stream export file", err)
	}
}
