package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is one catalog item. availableCopies tracks physical copies on
// the shelf and always satisfies 0 <= available_copies <= total_copies;
// the borrow ledger is the only writer of available_copies.
type Book struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	Publisher       *string    `json:"publisher,omitempty"`
	PublicationYear *int       `json:"publication_year,omitempty"`
	Category        *string    `json:"category,omitempty"`
	LocationCode    *string    `json:"location_code,omitempty"`
	Description     *string    `json:"description,omitempty"`
	CoverImageURL   *string    `json:"cover_image_url,omitempty"`
	TotalCopies     int        `json:"total_copies"`
	AvailableCopies int        `json:"available_copies"`
	TotalBorrows    int        `json:"total_borrows"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsAvailable reports whether at least one copy is on the shelf
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
