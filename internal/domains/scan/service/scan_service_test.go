package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entrymodel "library-backend/internal/domains/entry/model"
	hoursmodel "library-backend/internal/domains/hours/model"
	"library-backend/internal/domains/scan/model"
)

// fakeHoursService answers the open/closed policy check with a fixed value
type fakeHoursService struct {
	open bool
}

func (f *fakeHoursService) SetHours(ctx context.Context, req hoursmodel.SetHoursRequest, librarianID *uuid.UUID) (*hoursmodel.HoursResponse, error) {
	return nil, nil
}

func (f *fakeHoursService) GetCurrent(ctx context.Context) (*hoursmodel.HoursResponse, error) {
	return nil, nil
}

func (f *fakeHoursService) GetStatus(ctx context.Context, now time.Time) (*hoursmodel.StatusResponse, error) {
	return &hoursmodel.StatusResponse{Open: f.open}, nil
}

func (f *fakeHoursService) IsOpen(ctx context.Context, now time.Time) (bool, error) {
	return f.open, nil
}

// fakeEntryService records which calls were made and simulates the
// inside/outside state machine for a single student.
type fakeEntryService struct {
	inside      bool
	entryCalls  int
	exitCalls   int
	lastMethod  string
	lastCapture *string
}

func (f *fakeEntryService) RecordEntry(ctx context.Context, studentID uuid.UUID, at time.Time, method string, captureRef *string) (*entrymodel.EntryResponse, error) {
	if f.inside {
		return nil, entrymodel.ErrAlreadyInside
	}
	f.inside = true
	f.entryCalls++
	f.lastMethod = method
	f.lastCapture = captureRef
	return &entrymodel.EntryResponse{
		ID:          uuid.NewString(),
		StudentID:   studentID.String(),
		EntryTime:   at,
		EntryMethod: method,
	}, nil
}

func (f *fakeEntryService) RecordExit(ctx context.Context, studentID uuid.UUID, at time.Time, captureRef *string) (*entrymodel.EntryResponse, error) {
	if !f.inside {
		return nil, entrymodel.ErrNotInside
	}
	f.inside = false
	f.exitCalls++
	return &entrymodel.EntryResponse{
		ID:          uuid.NewString(),
		StudentID:   studentID.String(),
		ExitTime:    &at,
		EntryMethod: entrymodel.EntryMethodQR,
	}, nil
}

func (f *fakeEntryService) ForceExit(ctx context.Context, entryID uuid.UUID, at time.Time) (*entrymodel.EntryResponse, error) {
	return nil, nil
}

func (f *fakeEntryService) ListCurrentlyInside(ctx context.Context) ([]entrymodel.EntryResponse, error) {
	return nil, nil
}

func (f *fakeEntryService) CountInside(ctx context.Context) (int, error) {
	return 0, nil
}

func (f *fakeEntryService) List(ctx context.Context, filter entrymodel.ListEntriesRequest) ([]entrymodel.EntryResponse, int, error) {
	return nil, 0, nil
}

func (f *fakeEntryService) AutoExitAll(ctx context.Context, at time.Time) (int, error) {
	return 0, nil
}

func TestHandleScanEntryWhileOpen(t *testing.T) {
	entries := &fakeEntryService{}
	svc := NewService(&fakeHoursService{open: true}, entries)
	studentID := uuid.New()

	resp, err := svc.HandleScan(context.Background(), studentID, model.ScanRequest{QRData: model.QRLibraryEntry})
	require.NoError(t, err)

	assert.Equal(t, model.ActionEntry, resp.Action)
	require.NotNil(t, resp.Entry)
	assert.Equal(t, studentID.String(), resp.Entry.StudentID)
	assert.Equal(t, entrymodel.EntryMethodQR, entries.lastMethod)
	assert.Equal(t, 1, entries.entryCalls)
}

func TestHandleScanEntryWhileClosed(t *testing.T) {
	entries := &fakeEntryService{}
	svc := NewService(&fakeHoursService{open: false}, entries)

	_, err := svc.HandleScan(context.Background(), uuid.New(), model.ScanRequest{QRData: model.QRLibraryEntry})

	assert.ErrorIs(t, err, model.ErrLibraryClosed)
	assert.Zero(t, entries.entryCalls, "closed library must not record an entry")
}

func TestHandleScanExitWorksWhileClosed(t *testing.T) {
	entries := &fakeEntryService{inside: true}
	svc := NewService(&fakeHoursService{open: false}, entries)

	resp, err := svc.HandleScan(context.Background(), uuid.New(), model.ScanRequest{QRData: model.QRLibraryExit})
	require.NoError(t, err)

	assert.Equal(t, model.ActionExit, resp.Action)
	assert.Equal(t, 1, entries.exitCalls)
}

func TestHandleScanDoubleEntry(t *testing.T) {
	entries := &fakeEntryService{inside: true}
	svc := NewService(&fakeHoursService{open: true}, entries)

	_, err := svc.HandleScan(context.Background(), uuid.New(), model.ScanRequest{QRData: model.QRLibraryEntry})

	assert.ErrorIs(t, err, entrymodel.ErrAlreadyInside)
}

func TestHandleScanExitWithoutEntry(t *testing.T) {
	entries := &fakeEntryService{}
	svc := NewService(&fakeHoursService{open: true}, entries)

	_, err := svc.HandleScan(context.Background(), uuid.New(), model.ScanRequest{QRData: model.QRLibraryExit})

	assert.ErrorIs(t, err, entrymodel.ErrNotInside)
}

func TestHandleScanUnknownPayload(t *testing.T) {
	svc := NewService(&fakeHoursService{open: true}, &fakeEntryService{})

	_, err := svc.HandleScan(context.Background(), uuid.New(), model.ScanRequest{QRData: "CAFETERIA_ENTRY"})

	assert.ErrorIs(t, err, model.ErrInvalidQRCode)
}

func TestHandleScanPassesCaptureRef(t *testing.T) {
	entries := &fakeEntryService{}
	svc := NewService(&fakeHoursService{open: true}, entries)

	ref := "capture/2026/08/cam-1.jpg"
	_, err := svc.HandleScan(context.Background(), uuid.New(), model.ScanRequest{
		QRData:     model.QRLibraryEntry,
		CaptureRef: &ref,
	})
	require.NoError(t, err)

	require.NotNil(t, entries.lastCapture)
	assert.Equal(t, ref, *entries.lastCapture)
}
