package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/hours/model"
	"library-backend/internal/domains/hours/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new library hours handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// SetHours handles PUT /api/v1/library-hours
func (h *Handler) SetHours(c *gin.Context) {
	var req model.SetHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid library hours", err.Error())
		return
	}

	resp, err := h.service.SetHours(c.Request.Context(), req, nil)
	if err != nil {
		if model.IsValidationError(err) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid library hours", err.Error())
			return
		}
		response.InternalServerError(c, "Failed to update library hours")
		return
	}

	response.Success(c, http.StatusOK, "Library hours updated successfully", resp)
}

// GetHours handles GET /api/v1/library-hours
func (h *Handler) GetHours(c *gin.Context) {
	resp, err := h.service.GetCurrent(c.Request.Context())
	if err != nil {
		if errors.Is(err, model.ErrHoursNotConfigured) {
			response.NotFound(c, "Library hours not configured")
			return
		}
		response.InternalServerError(c, "Failed to get library hours")
		return
	}

	response.Success(c, http.StatusOK, "Library hours retrieved successfully", resp)
}

// GetStatus handles GET /api/v1/library-hours/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp, err := h.service.GetStatus(c.Request.Context(), time.Now())
	if err != nil {
		response.InternalServerError(c, "Failed to get library status")
		return
	}

	response.Success(c, http.StatusOK, "Library status retrieved successfully", resp)
}
