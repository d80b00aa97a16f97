package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/student/model"
	"library-backend/internal/domains/student/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new student handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid registration data", err.Error())
		return
	}

	student, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if model.IsConflictError(err) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to register student")
		return
	}

	response.Success(c, http.StatusCreated, "Student registered successfully", student)
}

// Login handles POST /api/v1/auth/login
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

// Refresh handles POST /api/v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid refresh data", err.Error())
		return
	}

	auth, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		if model.IsAuthError(err) || model.IsNotFoundError(err) {
			response.Unauthorized(c, "Invalid refresh token")
			return
		}
		response.InternalServerError(c, "Failed to refresh tokens")
		return
	}

	response.Success(c, http.StatusOK, "Tokens refreshed successfully", auth)
}

// Me handles GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	id, err := uuid.Parse(middleware.Subject(c))
	if err != nil {
		response.Unauthorized(c, "Invalid principal")
		return
	}

	student, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Student not found")
			return
		}
		response.InternalServerError(c, "Failed to get profile")
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", student)
}

// GetByID handles GET /api/v1/students/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID format")
		return
	}

	student, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Student not found")
			return
		}
		response.InternalServerError(c, "Failed to get student")
		return
	}

	response.Success(c, http.StatusOK, "Student retrieved successfully", student)
}

// List handles GET /api/v1/students
func (h *Handler) List(c *gin.Context) {
	var filter model.ListStudentsRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters", err.Error())
		return
	}

	students, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list students")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Students retrieved successfully", students, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// Update handles PUT /api/v1/students/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID format")
		return
	}

	var req model.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid student data", err.Error())
		return
	}

	student, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Student not found")
			return
		}
		response.InternalServerError(c, "Failed to update student")
		return
	}

	response.Success(c, http.StatusOK, "Student updated successfully", student)
}

// Delete handles DELETE /api/v1/students/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, "Student not found")
		case errors.Is(err, model.ErrStudentHasRecords):
			response.Conflict(c, "Student has borrow or entry records; deactivate the account instead")
		default:
			response.InternalServerError(c, "Failed to delete student")
		}
		return
	}

	response.Success(c, http.StatusOK, "Student deleted successfully", nil)
}

// Activate handles PUT /api/v1/students/:id/activate
func (h *Handler) Activate(c *gin.Context) {
	h.setActive(c, true, "Student activated successfully")
}

// Deactivate handles PUT /api/v1/students/:id/deactivate
func (h *Handler) Deactivate(c *gin.Context) {
	h.setActive(c, false, "Student deactivated successfully")
}

func (h *Handler) setActive(c *gin.Context, active bool, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID format")
		return
	}

	student, err := h.service.SetActive(c.Request.Context(), id, active)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Student not found")
			return
		}
		response.InternalServerError(c, "Failed to update student status")
		return
	}

	response.Success(c, http.StatusOK, message, student)
}
