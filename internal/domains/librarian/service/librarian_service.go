package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/librarian/model"
	"library-backend/internal/domains/librarian/repository"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

const bcryptCost = 12

// ServiceInterface is the staff account business logic
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateLibrarianRequest) (*model.LibrarianResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.LibrarianResponse, error)
	List(ctx context.Context) ([]model.LibrarianResponse, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateLibrarianRequest) (*model.LibrarianResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LibrarianService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
}

// NewService creates a new librarian service
func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &LibrarianService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// Create implements ServiceInterface.Create
func (s *LibrarianService) Create(ctx context.Context, req model.CreateLibrarianRequest) (*model.LibrarianResponse, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	librarian := model.Librarian{
		ID:           uuid.New(),
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &librarian); err != nil {
		return nil, err
	}

	logger.Info("librarian created", map[string]interface{}{
		"librarian_id":  librarian.ID.String(),
		"employee_code": librarian.EmployeeCode,
		"role":          librarian.Role,
	})

	resp := librarian.ToResponse()
	return &resp, nil
}

// Login implements ServiceInterface.Login
func (s *LibrarianService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	librarian, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if model.IsNotFoundError(err) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(librarian.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !librarian.Active {
		return nil, model.ErrLibrarianInactive
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(librarian.ID.String(), librarian.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(librarian.ID.String(), librarian.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Librarian:    librarian.ToResponse(),
	}, nil
}

// GetByID implements ServiceInterface.GetByID
func (s *LibrarianService) GetByID(ctx context.Context, id uuid.UUID) (*model.LibrarianResponse, error) {
	librarian, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := librarian.ToResponse()
	return &resp, nil
}

// List implements ServiceInterface.List
func (s *LibrarianService) List(ctx context.Context) ([]model.LibrarianResponse, error) {
	librarians, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(librarians), nil
}

// Update implements ServiceInterface.Update
func (s *LibrarianService) Update(ctx context.Context, id uuid.UUID, req model.UpdateLibrarianRequest) (*model.LibrarianResponse, error) {
	librarian, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		librarian.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		librarian.LastName = *req.LastName
	}
	if req.Role != nil {
		librarian.Role = *req.Role
	}
	if req.Active != nil {
		librarian.Active = *req.Active
	}

	if err := s.repo.Update(ctx, librarian); err != nil {
		return nil, err
	}

	resp := librarian.ToResponse()
	return &resp, nil
}

// Delete implements ServiceInterface.Delete
func (s *LibrarianService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
