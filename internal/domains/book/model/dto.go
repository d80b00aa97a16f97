package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateBookRequest creates a catalog item
type CreateBookRequest struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            string  `json:"isbn"`
	Publisher       *string `json:"publisher"`
	PublicationYear *int    `json:"publication_year"`
	Category        *string `json:"category"`
	LocationCode    *string `json:"location_code"`
	Description     *string `json:"description"`
	TotalCopies     int     `json:"total_copies"`
}

// Validate validates CreateBookRequest
func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 300),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("ISBN is required"),
			validation.Length(10, 17),
		),
		validation.Field(&r.TotalCopies,
			validation.Min(0).Error("total copies must not be negative"),
		),
	)
}

// UpdateBookRequest updates mutable catalog fields. Copy counts are
// adjusted here too; availability itself only moves through the ledger.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Publisher       *string `json:"publisher"`
	PublicationYear *int    `json:"publication_year"`
	Category        *string `json:"category"`
	LocationCode    *string `json:"location_code"`
	Description     *string `json:"description"`
	TotalCopies     *int    `json:"total_copies"`
	Notes           *string `json:"notes"`
}

// Validate validates UpdateBookRequest
func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 300)),
		validation.Field(&r.TotalCopies, validation.Min(0).Error("total copies must not be negative")),
	)
}

// ListBooksRequest filters the catalog listing
type ListBooksRequest struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

// BookResponse is the catalog item as returned to clients
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Publisher       *string   `json:"publisher,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	Category        *string   `json:"category,omitempty"`
	LocationCode    *string   `json:"location_code,omitempty"`
	Description     *string   `json:"description,omitempty"`
	CoverImageURL   *string   `json:"cover_image_url,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	TotalBorrows    int       `json:"total_borrows"`
	Available       bool      `json:"available"`
}

// ToResponse converts the entity to its response DTO
func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Category:        b.Category,
		LocationCode:    b.LocationCode,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		TotalBorrows:    b.TotalBorrows,
		Available:       b.IsAvailable(),
	}
}

// ToResponseList converts a slice of entities
func ToResponseList(books []Book) []BookResponse {
	result := make([]BookResponse, 0, len(books))
	for i := range books {
		result = append(result, books[i].ToResponse())
	}
	return result
}
