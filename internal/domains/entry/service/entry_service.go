package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/entry/model"
	"library-backend/internal/domains/entry/repository"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	insideCountCacheKey = "library:inside:count"
	insideCountCacheTTL = 10 * time.Second
)

type EntryService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService creates a new entry service
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &EntryService{
		repo:  repo,
		cache: cache,
	}
}

// RecordEntry implements ServiceInterface.RecordEntry
func (s *EntryService) RecordEntry(ctx context.Context, studentID uuid.UUID, at time.Time, method string, captureRef *string) (*model.EntryResponse, error) {
	entry := model.LibraryEntry{
		ID:              uuid.New(),
		StudentID:       studentID,
		EntryTime:       at,
		EntryMethod:     method,
		EntryCaptureRef: captureRef,
		CreatedAt:       at,
		UpdatedAt:       at,
	}

	if err := s.repo.CreateOpen(ctx, &entry); err != nil {
		return nil, err
	}

	s.invalidateInsideCount(ctx)

	resp := entry.ToResponse()
	return &resp, nil
}

// RecordExit implements ServiceInterface.RecordExit
func (s *EntryService) RecordExit(ctx context.Context, studentID uuid.UUID, at time.Time, captureRef *string) (*model.EntryResponse, error) {
	closed, err := s.repo.CloseOpen(ctx, studentID, at, captureRef)
	if err != nil {
		return nil, err
	}

	s.invalidateInsideCount(ctx)

	resp := closed.ToResponse()
	return &resp, nil
}

// ForceExit implements ServiceInterface.ForceExit
func (s *EntryService) ForceExit(ctx context.Context, entryID uuid.UUID, at time.Time) (*model.EntryResponse, error) {
	ref := model.EntryMethodManual
	closed, err := s.repo.CloseByID(ctx, entryID, at, &ref)
	if err != nil {
		return nil, err
	}

	s.invalidateInsideCount(ctx)

	resp := closed.ToResponse()
	return &resp, nil
}

// ListCurrentlyInside implements ServiceInterface.ListCurrentlyInside
func (s *EntryService) ListCurrentlyInside(ctx context.Context) ([]model.EntryResponse, error) {
	entries, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open entries: %w", err)
	}

	return model.ToResponseList(entries), nil
}

// CountInside implements ServiceInterface.CountInside.
// Dashboards poll this endpoint, so the count is served from a
// short-lived cache.
func (s *EntryService) CountInside(ctx context.Context) (int, error) {
	var cached int
	found, err := s.cache.Get(ctx, insideCountCacheKey, &cached)
	if err != nil {
		logger.Warn("inside-count cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return cached, nil
	}

	count, err := s.repo.CountOpen(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, insideCountCacheKey, count, insideCountCacheTTL); err != nil {
		logger.Warn("inside-count cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return count, nil
}

// List implements ServiceInterface.List
func (s *EntryService) List(ctx context.Context, filter model.ListEntriesRequest) ([]model.EntryResponse, int, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return model.ToResponseList(entries), total, nil
}

// AutoExitAll implements ServiceInterface.AutoExitAll
func (s *EntryService) AutoExitAll(ctx context.Context, at time.Time) (int, error) {
	closed, err := s.repo.CloseAllOpen(ctx, at, model.AutoExitCaptureRef)
	if err != nil {
		return 0, err
	}

	if closed > 0 {
		s.invalidateInsideCount(ctx)
		logger.Info("auto-exited students after closing time", map[string]interface{}{"count": closed})
	}

	return closed, nil
}

func (s *EntryService) invalidateInsideCount(ctx context.Context) {
	if err := s.cache.Delete(ctx, insideCountCacheKey); err != nil {
		logger.Warn("inside-count cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
