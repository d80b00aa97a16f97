package model

import (
	"time"

	"github.com/google/uuid"
)

// Librarian is a staff account. Role distinguishes regular staff from
// administrators; both authenticate through the staff login.
type Librarian struct {
	ID           uuid.UUID `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins the name parts for display
func (l *Librarian) FullName() string {
	return l.FirstName + " " + l.LastName
}
