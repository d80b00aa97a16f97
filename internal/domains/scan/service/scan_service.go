package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	entrymodel "library-backend/internal/domains/entry/model"
	entryservice "library-backend/internal/domains/entry/service"
	hoursservice "library-backend/internal/domains/hours/service"
	"library-backend/internal/domains/scan/model"
	"library-backend/pkg/logger"
)

// ServiceInterface is the gate scan workflow
type ServiceInterface interface {
	HandleScan(ctx context.Context, studentID uuid.UUID, req model.ScanRequest) (*model.ScanResponse, error)
}

// ScanService dispatches gate scans: entry scans are gated on the
// opening hours policy, exit scans always go through so nobody gets
// locked in after close.
type ScanService struct {
	hours   hoursservice.ServiceInterface
	entries entryservice.ServiceInterface
}

// NewService creates a new scan gateway service
func NewService(hours hoursservice.ServiceInterface, entries entryservice.ServiceInterface) ServiceInterface {
	return &ScanService{
		hours:   hours,
		entries: entries,
	}
}

// HandleScan implements ServiceInterface.HandleScan
func (s *ScanService) HandleScan(ctx context.Context, studentID uuid.UUID, req model.ScanRequest) (*model.ScanResponse, error) {
	now := time.Now()

	switch req.QRData {
	case model.QRLibraryEntry:
		open, err := s.hours.IsOpen(ctx, now)
		if err != nil {
			return nil, err
		}
		if !open {
			logger.Info("entry scan rejected, library closed", map[string]interface{}{
				"student_id": studentID.String(),
			})
			return nil, model.ErrLibraryClosed
		}

		entry, err := s.entries.RecordEntry(ctx, studentID, now, entrymodel.EntryMethodQR, req.CaptureRef)
		if err != nil {
			return nil, err
		}

		return &model.ScanResponse{
			Action:  model.ActionEntry,
			Message: "Welcome to the library",
			Entry:   entry,
		}, nil

	case model.QRLibraryExit:
		entry, err := s.entries.RecordExit(ctx, studentID, now, req.CaptureRef)
		if err != nil {
			return nil, err
		}

		return &model.ScanResponse{
			Action:  model.ActionExit,
			Message: "See you next time",
			Entry:   entry,
		}, nil

	default:
		return nil, model.ErrInvalidQRCode
	}
}
