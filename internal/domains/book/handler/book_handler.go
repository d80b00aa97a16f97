package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new book handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Create handles POST /api/v1/books
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid book data", err.Error())
		return
	}

	book, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if model.IsConflictError(err) {
			response.Conflict(c, "A book with this ISBN already exists")
			return
		}
		response.InternalServerError(c, "Failed to create book")
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", book)
}

// GetByID handles GET /api/v1/books/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID format")
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to get book")
		return
	}

	response.Success(c, http.StatusOK, "Book retrieved successfully", book)
}

// List handles GET /api/v1/books?q=...&category=...&page=1&limit=20
func (h *Handler) List(c *gin.Context) {
	var filter model.ListBooksRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters", err.Error())
		return
	}

	books, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list books")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Books retrieved successfully", books, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// Update handles PUT /api/v1/books/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID format")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request payload", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid book data", err.Error())
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, "Book not found")
		case model.IsValidationError(err):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid copy count", err.Error())
		default:
			response.InternalServerError(c, "Failed to update book")
		}
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", book)
}

// Delete handles DELETE /api/v1/books/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.NotFound(c, "Book not found")
		case model.IsConflictError(err):
			response.Conflict(c, "Book has borrow history and cannot be deleted")
		default:
			response.InternalServerError(c, "Failed to delete book")
		}
		return
	}

	response.Success(c, http.StatusOK, "Book deleted successfully", nil)
}

// ListPopular handles GET /api/v1/books/popular?limit=10
func (h *Handler) ListPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	books, err := h.service.ListPopular(c.Request.Context(), limit)
	if err != nil {
		response.InternalServerError(c, "Failed to list popular books")
		return
	}

	response.Success(c, http.StatusOK, "Popular books retrieved successfully", books)
}
