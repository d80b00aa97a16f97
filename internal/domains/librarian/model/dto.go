package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateLibrarianRequest creates a staff account (admin only)
type CreateLibrarianRequest struct {
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
}

// Validate validates CreateLibrarianRequest
func (r CreateLibrarianRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EmployeeCode,
			validation.Required.Error("employee code is required"),
			validation.Length(3, 20),
		),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72).Error("password must be 8-72 characters"),
		),
		validation.Field(&r.Role,
			validation.Required,
			validation.In("LIBRARIAN", "ADMIN").Error("role must be LIBRARIAN or ADMIN"),
		),
	)
}

// LoginRequest authenticates a staff member
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates LoginRequest
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateLibrarianRequest updates mutable staff fields
type UpdateLibrarianRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
}

// Validate validates UpdateLibrarianRequest
func (r UpdateLibrarianRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In("LIBRARIAN", "ADMIN")),
	)
}

// LibrarianResponse is the staff account as returned to clients
type LibrarianResponse struct {
	ID           uuid.UUID `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResponse carries the token pair issued on staff login
type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Librarian    LibrarianResponse `json:"librarian"`
}

// ToResponse converts the entity to its response DTO
func (l *Librarian) ToResponse() LibrarianResponse {
	return LibrarianResponse{
		ID:           l.ID,
		EmployeeCode: l.EmployeeCode,
		FirstName:    l.FirstName,
		LastName:     l.LastName,
		FullName:     l.FullName(),
		Email:        l.Email,
		Role:         l.Role,
		Active:       l.Active,
		CreatedAt:    l.CreatedAt,
	}
}

// ToResponseList converts a slice of entities
func ToResponseList(librarians []Librarian) []LibrarianResponse {
	result := make([]LibrarianResponse, 0, len(librarians))
	for i := range librarians {
		result = append(result, librarians[i].ToResponse())
	}
	return result
}
