package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/announcement/model"
	"library-backend/internal/domains/announcement/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new announcement handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Create handles POST /api/v1/announcements
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid announcement data", err.Error())
		return
	}

	var librarianID *uuid.UUID
	if id, err := uuid.Parse(middleware.Subject(c)); err == nil {
		librarianID = &id
	}

	announcement, err := h.service.Create(c.Request.Context(), req, librarianID)
	if err != nil {
		response.InternalServerError(c, "Failed to create announcement")
		return
	}

	response.Success(c, http.StatusCreated, "Announcement created successfully", announcement)
}

// ListActive handles GET /api/v1/announcements
func (h *Handler) ListActive(c *gin.Context) {
	announcements, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list announcements")
		return
	}

	response.Success(c, http.StatusOK, "Announcements retrieved successfully", announcements)
}

// ListAll handles GET /api/v1/announcements/all
func (h *Handler) ListAll(c *gin.Context) {
	announcements, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list announcements")
		return
	}

	response.Success(c, http.StatusOK, "Announcements retrieved successfully", announcements)
}

// GetByID handles GET /api/v1/announcements/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid announcement ID format")
		return
	}

	announcement, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Announcement not found")
			return
		}
		response.InternalServerError(c, "Failed to get announcement")
		return
	}

	response.Success(c, http.StatusOK, "Announcement retrieved successfully", announcement)
}

// Update handles PUT /api/v1/announcements/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid announcement ID format")
		return
	}

	var req model.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid announcement data", err.Error())
		return
	}

	announcement, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Announcement not found")
			return
		}
		response.InternalServerError(c, "Failed to update announcement")
		return
	}

	response.Success(c, http.StatusOK, "Announcement updated successfully", announcement)
}

// Delete handles DELETE /api/v1/announcements/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid announcement ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Announcement not found")
			return
		}
		response.InternalServerError(c, "Failed to delete announcement")
		return
	}

	response.Success(c, http.StatusOK, "Announcement deleted successfully", nil)
}
