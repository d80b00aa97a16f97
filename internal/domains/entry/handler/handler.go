package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/entry/model"
	"library-backend/internal/domains/entry/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new entry handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// ListCurrentlyInside handles GET /api/v1/library-entries/inside
func (h *Handler) ListCurrentlyInside(c *gin.Context) {
	entries, err := h.service.ListCurrentlyInside(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list students currently inside")
		return
	}

	response.Success(c, http.StatusOK, "Students currently inside", entries)
}

// CurrentCount handles GET /api/v1/library-entries/current-count
func (h *Handler) CurrentCount(c *gin.Context) {
	count, err := h.service.CountInside(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to count students inside")
		return
	}

	response.Success(c, http.StatusOK, "Current library occupancy", gin.H{"count": count})
}

// List handles GET /api/v1/library-entries
func (h *Handler) List(c *gin.Context) {
	var filter model.ListEntriesRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters", err.Error())
		return
	}

	entries, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list library entries")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Library entries retrieved successfully", entries, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// ForceExit handles PUT /api/v1/library-entries/:id/exit
func (h *Handler) ForceExit(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID format")
		return
	}

	entry, err := h.service.ForceExit(c.Request.Context(), entryID, time.Now())
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, "Library entry not found")
		case model.IsConflictError(err):
			response.Conflict(c, "Library entry already closed")
		default:
			response.InternalServerError(c, "Failed to close library entry")
		}
		return
	}

	response.Success(c, http.StatusOK, "Exit recorded successfully", entry)
}
