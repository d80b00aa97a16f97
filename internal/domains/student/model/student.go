package model

import (
	"time"

	"github.com/google/uuid"
)

// Student is a registered library patron. PasswordHash never leaves
// the repository/service layer; responses use StudentResponse.
type Student struct {
	ID           uuid.UUID  `json:"id"`
	StudentCode  string     `json:"student_code"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Department   *string    `json:"department,omitempty"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	PhotoURL     *string    `json:"photo_url,omitempty"`
	Active       bool       `json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName joins the name parts for display
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
