package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Announcement is a notice shown to students. An announcement with an
// ExpiresAt in the past is hidden from the active listing and purged
// by the background sweep.
type Announcement struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	LibrarianID *uuid.UUID `json:"librarian_id,omitempty"`
	Pinned      bool       `json:"pinned"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsExpired reports whether the announcement has lapsed
func (a *Announcement) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}

// CreateAnnouncementRequest publishes a notice
type CreateAnnouncementRequest struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Pinned    bool       `json:"pinned"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Validate validates CreateAnnouncementRequest
func (r CreateAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 300),
		),
		validation.Field(&r.Body,
			validation.Required.Error("body is required"),
		),
	)
}

// UpdateAnnouncementRequest edits a published notice
type UpdateAnnouncementRequest struct {
	Title     *string    `json:"title"`
	Body      *string    `json:"body"`
	Pinned    *bool      `json:"pinned"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Validate validates UpdateAnnouncementRequest
func (r UpdateAnnouncementRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 300)),
		validation.Field(&r.Body, validation.NilOrNotEmpty),
	)
}
