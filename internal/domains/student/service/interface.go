package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/student/model"
)

// ServiceInterface is the student account business logic
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterStudentRequest) (*model.StudentResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req model.RefreshRequest) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.StudentResponse, error)
	GetByCode(ctx context.Context, studentCode string) (*model.StudentResponse, error)
	List(ctx context.Context, filter model.ListStudentsRequest) ([]model.StudentResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateStudentRequest) (*model.StudentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.StudentResponse, error)
	SetPhoto(ctx context.Context, id uuid.UUID, url string) error
}
