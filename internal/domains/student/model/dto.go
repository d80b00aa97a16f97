package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// RegisterStudentRequest creates a new student account
type RegisterStudentRequest struct {
	StudentCode string  `json:"student_code"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Department  *string `json:"department"`
	PhoneNumber *string `json:"phone_number"`
}

// Validate validates RegisterStudentRequest
func (r RegisterStudentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StudentCode,
			validation.Required.Error("student code is required"),
			validation.Length(3, 20),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72).Error("password must be 8-72 characters"),
		),
	)
}

// LoginRequest authenticates a student or librarian
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

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate validates RefreshRequest
func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// UpdateStudentRequest updates mutable profile fields
type UpdateStudentRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Department  *string `json:"department"`
	PhoneNumber *string `json:"phone_number"`
}

// Validate validates UpdateStudentRequest
func (r UpdateStudentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// ListStudentsRequest filters the student listing
type ListStudentsRequest struct {
	Search     string `form:"q"`
	Department string `form:"department"`
	Active     *bool  `form:"active"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
}

// StudentResponse is the student as returned to clients
type StudentResponse struct {
	ID          uuid.UUID  `json:"id"`
	StudentCode string     `json:"student_code"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Department  *string    `json:"department,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse carries the token pair issued on login or refresh
type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Student      StudentResponse `json:"student"`
}

// ToResponse converts the entity to its response DTO
func (s *Student) ToResponse() StudentResponse {
	return StudentResponse{
		ID:          s.ID,
		StudentCode: s.StudentCode,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		FullName:    s.FullName(),
		Email:       s.Email,
		Department:  s.Department,
		PhoneNumber: s.PhoneNumber,
		PhotoURL:    s.PhotoURL,
		Active:      s.Active,
		LastLoginAt: s.LastLoginAt,
		CreatedAt:   s.CreatedAt,
	}
}

// ToResponseList converts a slice of entities
func ToResponseList(students []Student) []StudentResponse {
	result := make([]StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, students[i].ToResponse())
	}
	return result
}
