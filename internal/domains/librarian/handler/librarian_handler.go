package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/librarian/model"
	"library-backend/internal/domains/librarian/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new librarian handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Login handles POST /api/v1/auth/librarian/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid login data", err.Error())
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if model.IsAuthError(err) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, "Logged in successfully", auth)
}

// Create handles POST /api/v1/librarians
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateLibrarianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid librarian data", err.Error())
		return
	}

	librarian, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if model.IsConflictError(err) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to create librarian")
		return
	}

	response.Success(c, http.StatusCreated, "Librarian created successfully", librarian)
}

// GetByID handles GET /api/v1/librarians/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid librarian ID format")
		return
	}

	librarian, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Librarian not found")
			return
		}
		response.InternalServerError(c, "Failed to get librarian")
		return
	}

	response.Success(c, http.StatusOK, "Librarian retrieved successfully", librarian)
}

// List handles GET /api/v1/librarians
func (h *Handler) List(c *gin.Context) {
	librarians, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list librarians")
		return
	}

	response.Success(c, http.StatusOK, "Librarians retrieved successfully", librarians)
}

// Update handles PUT /api/v1/librarians/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid librarian ID format")
		return
	}

	var req model.UpdateLibrarianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid librarian data", err.Error())
		return
	}

	librarian, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Librarian not found")
			return
		}
		response.InternalServerError(c, "Failed to update librarian")
		return
	}

	response.Success(c, http.StatusOK, "Librarian updated successfully", librarian)
}

// Delete handles DELETE /api/v1/librarians/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid librarian ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Librarian not found")
			return
		}
		response.InternalServerError(c, "Failed to delete librarian")
		return
	}

	response.Success(c, http.StatusOK, "Librarian deleted successfully", nil)
}
