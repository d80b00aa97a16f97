package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/student/model"
)

// RepositoryInterface defines the student persistence contract
type RepositoryInterface interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByCode(ctx context.Context, studentCode string) (*model.Student, error)
	List(ctx context.Context, filter model.ListStudentsRequest) ([]model.Student, int, error)
	Update(ctx context.Context, student *model.Student) error

	// Delete removes a student. Returns ErrStudentHasRecords when the
	// student still has borrow or entry history referencing them.
	Delete(ctx context.Context, id uuid.UUID) error

	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
