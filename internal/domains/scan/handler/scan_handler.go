package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	entrymodel "library-backend/internal/domains/entry/model"
	"library-backend/internal/domains/scan/model"
	"library-backend/internal/domains/scan/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new scan gateway handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Scan handles POST /api/v1/scan. The scanning student is the
// authenticated principal; the body only carries the QR payload.
func (h *Handler) Scan(c *gin.Context) {
	studentID, err := uuid.Parse(middleware.Subject(c))
	if err != nil {
		response.Unauthorized(c, "Invalid principal")
		return
	}

	var req model.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid scan data", err.Error())
		return
	}

	result, err := h.service.HandleScan(c.Request.Context(), studentID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidQRCode):
			response.BadRequest(c, "Unrecognized QR code")
		case errors.Is(err, model.ErrLibraryClosed):
			response.ErrorResponse(c, http.StatusForbidden, "LIBRARY_CLOSED", "Library is currently closed")
		case entrymodel.IsConflictError(err):
			response.Conflict(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to process scan")
		}
		return
	}

	response.Success(c, http.StatusOK, result.Message, result)
}
