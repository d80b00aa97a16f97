package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/hours/model"
)

// fakeHoursRepository serves a single active schedule from memory
type fakeHoursRepository struct {
	active       *model.LibraryHours
	replaceCalls int
}

func (f *fakeHoursRepository) GetActive(ctx context.Context) (*model.LibraryHours, error) {
	if f.active == nil {
		return nil, model.ErrHoursNotConfigured
	}
	return f.active, nil
}

func (f *fakeHoursRepository) Replace(ctx context.Context, hours *model.LibraryHours) error {
	f.active = hours
	f.replaceCalls++
	return nil
}

func (f *fakeHoursRepository) ListHistory(ctx context.Context) ([]model.LibraryHours, error) {
	if f.active == nil {
		return nil, nil
	}
	return []model.LibraryHours{*f.active}, nil
}

// noopCache always misses so tests exercise the repository path
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) { return false, nil }
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}
func (noopCache) Increment(ctx context.Context, key string) (int64, error) { return 0, nil }
func (noopCache) Exists(ctx context.Context, key string) (bool, error)     { return false, nil }
func (noopCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
func (noopCache) TTL(ctx context.Context, key string) (time.Duration, error) { return 0, nil }
func (noopCache) Ping(ctx context.Context) error                   { return nil }

// 2026-08-24 is a Monday
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 8, 24, hour, minute, 0, 0, time.UTC)
}

func TestSetHoursValidation(t *testing.T) {
	repo := &fakeHoursRepository{}
	svc := NewService(repo, noopCache{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.SetHoursRequest
		want error
	}{
		{
			"bad open time format",
			model.SetHoursRequest{OpenTime: "8am", CloseTime: "17:00", WorkingDays: []string{"MON"}},
			model.ErrInvalidTimeFormat,
		},
		{
			"close before open",
			model.SetHoursRequest{OpenTime: "17:00", CloseTime: "08:00", WorkingDays: []string{"MON"}},
			model.ErrInvalidTimeRange,
		},
		{
			"open equals close",
			model.SetHoursRequest{OpenTime: "08:00", CloseTime: "08:00", WorkingDays: []string{"MON"}},
			model.ErrInvalidTimeRange,
		},
		{
			"no working days",
			model.SetHoursRequest{OpenTime: "08:00", CloseTime: "17:00", WorkingDays: nil},
			model.ErrEmptyWorkingDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetHours(ctx, tt.req, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, repo.replaceCalls, "invalid requests must not touch the repository")
}

func TestSetHoursReplacesSchedule(t *testing.T) {
	repo := &fakeHoursRepository{}
	svc := NewService(repo, noopCache{})
	librarianID := uuid.New()

	resp, err := svc.SetHours(context.Background(), model.SetHoursRequest{
		OpenTime:    "08:00",
		CloseTime:   "17:00",
		WorkingDays: []string{"MON", "TUE", "WED", "THU", "FRI"},
	}, &librarianID)
	require.NoError(t, err)

	assert.Equal(t, "08:00", resp.OpenTime)
	assert.Equal(t, []string{"MON", "TUE", "WED", "THU", "FRI"}, resp.WorkingDays)
	assert.Equal(t, 1, repo.replaceCalls)
	require.NotNil(t, repo.active.LibrarianID)
	assert.Equal(t, librarianID, *repo.active.LibrarianID)
}

func TestIsOpenFollowsSchedule(t *testing.T) {
	repo := &fakeHoursRepository{active: &model.LibraryHours{
		ID:          uuid.New(),
		OpenTime:    "08:00",
		CloseTime:   "17:00",
		WorkingDays: "MON,TUE,WED,THU,FRI",
		Active:      true,
	}}
	svc := NewService(repo, noopCache{})
	ctx := context.Background()

	open, err := svc.IsOpen(ctx, mondayAt(10, 0))
	require.NoError(t, err)
	assert.True(t, open)

	open, err = svc.IsOpen(ctx, mondayAt(18, 0))
	require.NoError(t, err)
	assert.False(t, open)
}

func TestIsOpenWithoutScheduleFallsBackToOpen(t *testing.T) {
	svc := NewService(&fakeHoursRepository{}, noopCache{})

	open, err := svc.IsOpen(context.Background(), mondayAt(3, 0))
	require.NoError(t, err)
	assert.True(t, open, "unconfigured schedule must not gate scans")
}

func TestGetStatus(t *testing.T) {
	repo := &fakeHoursRepository{active: &model.LibraryHours{
		ID:          uuid.New(),
		OpenTime:    "08:00",
		CloseTime:   "17:00",
		WorkingDays: "MON,TUE",
		Active:      true,
	}}
	svc := NewService(repo, noopCache{})

	status, err := svc.GetStatus(context.Background(), mondayAt(9, 0))
	require.NoError(t, err)
	assert.True(t, status.Open)
	assert.Equal(t, []string{"MON", "TUE"}, status.WorkingDays)

	status, err = svc.GetStatus(context.Background(), mondayAt(22, 0))
	require.NoError(t, err)
	assert.False(t, status.Open)
}

func TestGetCurrentWithoutSchedule(t *testing.T) {
	svc := NewService(&fakeHoursRepository{}, noopCache{})

	_, err := svc.GetCurrent(context.Background())
	assert.ErrorIs(t, err, model.ErrHoursNotConfigured)
}
