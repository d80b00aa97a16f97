package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/student/model"
	"library-backend/internal/domains/student/repository"
	"library-backend/internal/shared"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

const bcryptCost = 12

type StudentService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
}

// NewService creates a new student service
func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &StudentService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// Register implements ServiceInterface.Register
func (s *StudentService) Register(ctx context.Context, req model.RegisterStudentRequest) (*model.StudentResponse, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	student := model.Student{
		ID:           uuid.New(),
		StudentCode:  req.StudentCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Department:   req.Department,
		PhoneNumber:  req.PhoneNumber,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return nil, err
	}

	logger.Info("student registered", map[string]interface{}{
		"student_id":   student.ID.String(),
		"student_code": student.StudentCode,
	})

	resp := student.ToResponse()
	return &resp, nil
}

// Login implements ServiceInterface.Login
func (s *StudentService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	student, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if model.IsNotFoundError(err) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !student.Active {
		return nil, model.ErrStudentInactive
	}

	auth, err := s.issueTokens(student)
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchLastLogin(ctx, student.ID, time.Now()); err != nil {
		logger.Warn("failed to record last login", map[string]interface{}{
			"student_id": student.ID.String(),
			"error":      err.Error(),
		})
	}

	return auth, nil
}

// Refresh implements ServiceInterface.Refresh
func (s *StudentService) Refresh(ctx context.Context, req model.RefreshRequest) (*model.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !student.Active {
		return nil, model.ErrStudentInactive
	}

	return s.issueTokens(student)
}

// GetByID implements ServiceInterface.GetByID
func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (*model.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := student.ToResponse()
	return &resp, nil
}

// GetByCode implements ServiceInterface.GetByCode
func (s *StudentService) GetByCode(ctx context.Context, studentCode string) (*model.StudentResponse, error) {
	student, err := s.repo.GetByCode(ctx, studentCode)
	if err != nil {
		return nil, err
	}

	resp := student.ToResponse()
	return &resp, nil
}

// List implements ServiceInterface.List
func (s *StudentService) List(ctx context.Context, filter model.ListStudentsRequest) ([]model.StudentResponse, int, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return model.ToResponseList(students), total, nil
}

// Update implements ServiceInterface.Update
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req model.UpdateStudentRequest) (*model.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Department != nil {
		student.Department = req.Department
	}
	if req.PhoneNumber != nil {
		student.PhoneNumber = req.PhoneNumber
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}

	resp := student.ToResponse()
	return &resp, nil
}

// Delete implements ServiceInterface.Delete. Students with ledger or
// entry history cannot be removed; deactivate them instead.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("student deleted", map[string]interface{}{"student_id": id.String()})
	return nil
}

// SetActive implements ServiceInterface.SetActive
func (s *StudentService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.StudentResponse, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// SetPhoto implements ServiceInterface.SetPhoto
func (s *StudentService) SetPhoto(ctx context.Context, id uuid.UUID, url string) error {
	return s.repo.SetPhotoURL(ctx, id, url)
}

func (s *StudentService) issueTokens(student *model.Student) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(student.ID.String(), shared.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(student.ID.String(), shared.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Student:      student.ToResponse(),
	}, nil
}
