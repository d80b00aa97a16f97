package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/borrow/model"
	"library-backend/internal/domains/borrow/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new borrow ledger handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Borrow handles POST /api/v1/borrow-records
func (h *Handler) Borrow(c *gin.Context) {
	var req model.CreateBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid borrow data", err.Error())
		return
	}

	record, err := h.service.Borrow(c.Request.Context(), req)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, err.Error())
		// No available copy is a plain bad request, not a state conflict
		case errors.Is(err, model.ErrBookUnavailable):
			response.BadRequest(c, err.Error())
		case model.IsConflictError(err):
			response.Conflict(c, err.Error())
		case model.IsValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to create borrow record")
		}
		return
	}

	response.Success(c, http.StatusCreated, "Book borrowed successfully", record)
}

// Return handles PUT /api/v1/borrow-records/:id/return
func (h *Handler) Return(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid borrow record ID format")
		return
	}

	record, err := h.service.Return(c.Request.Context(), id)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, "Borrow record not found")
		case model.IsConflictError(err):
			response.Conflict(c, "Borrow record already returned")
		default:
			response.InternalServerError(c, "Failed to return book")
		}
		return
	}

	response.Success(c, http.StatusOK, "Book returned successfully", record)
}

// GetByID handles GET /api/v1/borrow-records/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid borrow record ID format")
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Borrow record not found")
			return
		}
		response.InternalServerError(c, "Failed to get borrow record")
		return
	}

	response.Success(c, http.StatusOK, "Borrow record retrieved successfully", record)
}

// List handles GET /api/v1/borrow-records
func (h *Handler) List(c *gin.Context) {
	var filter model.ListBorrowRecordsRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters", err.Error())
		return
	}

	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list borrow records")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Borrow records retrieved successfully", records, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// ListByStudent handles GET /api/v1/borrow-records/student/:studentId
func (h *Handler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID format")
		return
	}

	records, err := h.service.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.InternalServerError(c, "Failed to list borrow records")
		return
	}

	response.Success(c, http.StatusOK, "Borrow records retrieved successfully", records)
}

// ListOverdue handles GET /api/v1/borrow-records/overdue
func (h *Handler) ListOverdue(c *gin.Context) {
	records, err := h.service.ListOverdue(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list overdue records")
		return
	}

	response.Success(c, http.StatusOK, "Overdue records retrieved successfully", records)
}

// ListFines handles GET /api/v1/borrow-records/fines
func (h *Handler) ListFines(c *gin.Context) {
	records, err := h.service.ListWithOutstandingFines(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list outstanding fines")
		return
	}

	response.Success(c, http.StatusOK, "Outstanding fines retrieved successfully", records)
}

// SetFine handles PUT /api/v1/borrow-records/:id/fine
func (h *Handler) SetFine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid borrow record ID format")
		return
	}

	var req model.UpdateFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid fine data", err.Error())
		return
	}

	record, err := h.service.SetFine(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, "Borrow record not found")
		case model.IsValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "Failed to set fine")
		}
		return
	}

	response.Success(c, http.StatusOK, "Fine updated successfully", record)
}

// MarkFinePaid handles PUT /api/v1/borrow-records/:id/fine/paid
func (h *Handler) MarkFinePaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid borrow record ID format")
		return
	}

	record, err := h.service.MarkFinePaid(c.Request.Context(), id)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, "Borrow record not found")
		case model.IsConflictError(err):
			response.Conflict(c, "Fine already marked as paid")
		default:
			response.InternalServerError(c, "Failed to mark fine as paid")
		}
		return
	}

	response.Success(c, http.StatusOK, "Fine marked as paid", record)
}
