package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "library-backend/internal/domains/book/model"
	bookservice "library-backend/internal/domains/book/service"
	studentmodel "library-backend/internal/domains/student/model"
	studentservice "library-backend/internal/domains/student/service"
	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared/response"
)

// 5 MB is plenty for a cover scan or an ID photo
const maxUploadSize = 5 << 20

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Handler serves image upload and download for book covers and student
// photos. Files live in MinIO under covers/<book-id><ext> and
// photos/<student-id><ext>; the owning record stores the public URL.
type Handler struct {
	storage  *storage.MinIOStorage
	books    bookservice.ServiceInterface
	students studentservice.ServiceInterface
}

// NewHandler creates a new files handler
func NewHandler(storage *storage.MinIOStorage, books bookservice.ServiceInterface, students studentservice.ServiceInterface) *Handler {
	return &Handler{
		storage:  storage,
		books:    books,
		students: students,
	}
}

// UploadBookCover handles POST /api/v1/books/:id/cover
func (h *Handler) UploadBookCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID format")
		return
	}

	data, ext, contentType, ok := h.readImage(c)
	if !ok {
		return
	}

	key := fmt.Sprintf("covers/%s%s", id, ext)
	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		response.InternalServerError(c, "Failed to store cover image")
		return
	}

	if err := h.books.SetCoverImage(c.Request.Context(), id, url); err != nil {
		if bookmodel.IsNotFoundError(err) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to attach cover image")
		return
	}

	response.Success(c, http.StatusOK, "Cover image uploaded successfully", gin.H{"url": url})
}

// UploadStudentPhoto handles POST /api/v1/students/:id/photo
func (h *Handler) UploadStudentPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID format")
		return
	}

	data, ext, contentType, ok := h.readImage(c)
	if !ok {
		return
	}

	key := fmt.Sprintf("photos/%s%s", id, ext)
	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		response.InternalServerError(c, "Failed to store photo")
		return
	}

	if err := h.students.SetPhoto(c.Request.Context(), id, url); err != nil {
		if studentmodel.IsNotFoundError(err) {
			response.NotFound(c, "Student not found")
			return
		}
		response.InternalServerError(c, "Failed to attach photo")
		return
	}

	response.Success(c, http.StatusOK, "Photo uploaded successfully", gin.H{"url": url})
}

// Download handles GET /api/v1/files/*key for serving stored images
func (h *Handler) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		response.BadRequest(c, "Invalid file key")
		return
	}

	data, err := h.storage.Download(c.Request.Context(), key)
	if err != nil {
		response.NotFound(c, "File not found")
		return
	}

	contentType := allowedImageTypes[strings.ToLower(filepath.Ext(key))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) readImage(c *gin.Context) ([]byte, string, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing 'file' form field")
		return nil, "", "", false
	}

	if fileHeader.Size > maxUploadSize {
		response.BadRequest(c, "File exceeds the 5 MB limit")
		return nil, "", "", false
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		response.BadRequest(c, "Unsupported file type, expected jpg, png or webp")
		return nil, "", "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read uploaded file")
		return nil, "", "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		response.InternalServerError(c, "Failed to read uploaded file")
		return nil, "", "", false
	}

	return data, ext, contentType, true
}
