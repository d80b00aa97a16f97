package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/announcement/model"
	"library-backend/internal/domains/announcement/repository"
	"library-backend/pkg/logger"
)

// ServiceInterface is the announcement business logic
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateAnnouncementRequest, librarianID *uuid.UUID) (*model.Announcement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	ListActive(ctx context.Context) ([]model.Announcement, error)
	ListAll(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateAnnouncementRequest) (*model.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// PurgeExpired is invoked by the background sweep
	PurgeExpired(ctx context.Context) (int, error)
}

type AnnouncementService struct {
	repo repository.RepositoryInterface
}

// NewService creates a new announcement service
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &AnnouncementService{
		repo: repo,
	}
}

// Create implements ServiceInterface.Create
func (s *AnnouncementService) Create(ctx context.Context, req model.CreateAnnouncementRequest, librarianID *uuid.UUID) (*model.Announcement, error) {
	now := time.Now()
	announcement := model.Announcement{
		ID:          uuid.New(),
		Title:       req.Title,
		Body:        req.Body,
		LibrarianID: librarianID,
		Pinned:      req.Pinned,
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &announcement); err != nil {
		return nil, err
	}

	return &announcement, nil
}

// GetByID implements ServiceInterface.GetByID
func (s *AnnouncementService) GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

// ListActive implements ServiceInterface.ListActive
func (s *AnnouncementService) ListActive(ctx context.Context) ([]model.Announcement, error) {
	return s.repo.ListActive(ctx, time.Now())
}

// ListAll implements ServiceInterface.ListAll
func (s *AnnouncementService) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return s.repo.ListAll(ctx)
}

// Update implements ServiceInterface.Update
func (s *AnnouncementService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Body != nil {
		announcement.Body = *req.Body
	}
	if req.Pinned != nil {
		announcement.Pinned = *req.Pinned
	}
	if req.ExpiresAt != nil {
		announcement.ExpiresAt = req.ExpiresAt
	}

	if err := s.repo.Update(ctx, announcement); err != nil {
		return nil, err
	}

	return announcement, nil
}

// Delete implements ServiceInterface.Delete
func (s *AnnouncementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// PurgeExpired implements ServiceInterface.PurgeExpired
func (s *AnnouncementService) PurgeExpired(ctx context.Context) (int, error) {
	purged, err := s.repo.PurgeExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		logger.Info("expired announcements purged", map[string]interface{}{"count": purged})
	}

	return purged, nil
}
