package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/config"
	"library-backend/internal/domains/borrow/model"
	"library-backend/internal/domains/borrow/repository"
	"library-backend/pkg/logger"
)

type BorrowService struct {
	repo            repository.RepositoryInterface
	fineRatePerDay  decimal.Decimal
	defaultLoanDays int
	maxActiveLoans  int
}

// NewService creates a new borrow ledger service. An unparseable fine
// rate falls back to zero rather than refusing to start; lending still
// works, late returns just accrue nothing.
func NewService(repo repository.RepositoryInterface, cfg config.LibraryConfig) ServiceInterface {
	rate, err := decimal.NewFromString(cfg.FineRatePerDay)
	if err != nil {
		logger.Warn("invalid fine rate, fines disabled", map[string]interface{}{
			"rate":  cfg.FineRatePerDay,
			"error": err.Error(),
		})
		rate = decimal.Zero
	}

	return &BorrowService{
		repo:            repo,
		fineRatePerDay:  rate,
		defaultLoanDays: cfg.DefaultLoanDays,
		maxActiveLoans:  cfg.MaxActiveLoans,
	}
}

// Borrow implements ServiceInterface.Borrow
func (s *BorrowService) Borrow(ctx context.Context, req model.CreateBorrowRequest) (*model.BorrowRecordResponse, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, model.ErrStudentNotFound
	}
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, model.ErrBookNotFound
	}

	now := time.Now()

	dueDate := now.AddDate(0, 0, s.defaultLoanDays)
	if req.DueDate != nil {
		if !req.DueDate.After(now) {
			return nil, model.ErrInvalidDueDate
		}
		dueDate = *req.DueDate
	}

	if s.maxActiveLoans > 0 {
		active, err := s.repo.CountActiveByStudent(ctx, studentID)
		if err != nil {
			return nil, fmt.Errorf("failed to count active loans: %w", err)
		}
		if active >= s.maxActiveLoans {
			return nil, model.ErrMaxLoansReached
		}
	}

	record := model.BorrowRecord{
		ID:         uuid.New(),
		StudentID:  studentID,
		BookID:     bookID,
		BorrowDate: now,
		DueDate:    dueDate,
		Status:     model.StatusBorrowed,
		FineAmount: decimal.Zero,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Borrow(ctx, &record); err != nil {
		return nil, err
	}

	logger.Info("book borrowed", map[string]interface{}{
		"record_id":  record.ID.String(),
		"student_id": studentID.String(),
		"book_id":    bookID.String(),
		"due_date":   dueDate.Format(time.RFC3339),
	})

	resp := record.ToResponse(now)
	return &resp, nil
}

// Return implements ServiceInterface.Return
func (s *BorrowService) Return(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error) {
	now := time.Now()

	record, err := s.repo.Return(ctx, recordID, now, s.fineRatePerDay)
	if err != nil {
		return nil, err
	}

	logger.Info("book returned", map[string]interface{}{
		"record_id":  record.ID.String(),
		"student_id": record.StudentID.String(),
		"fine":       record.FineAmount.String(),
	})

	resp := record.ToResponse(now)
	return &resp, nil
}

// GetByID implements ServiceInterface.GetByID
func (s *BorrowService) GetByID(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	resp := record.ToResponse(time.Now())
	return &resp, nil
}

// List implements ServiceInterface.List
func (s *BorrowService) List(ctx context.Context, filter model.ListBorrowRecordsRequest) ([]model.BorrowRecordResponse, int, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return model.ToResponseList(records, time.Now()), total, nil
}

// ListByStudent implements ServiceInterface.ListByStudent
func (s *BorrowService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.BorrowRecordResponse, error) {
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(records, time.Now()), nil
}

// ListOverdue implements ServiceInterface.ListOverdue
func (s *BorrowService) ListOverdue(ctx context.Context) ([]model.BorrowRecordResponse, error) {
	now := time.Now()
	records, err := s.repo.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(records, now), nil
}

// ListWithOutstandingFines implements ServiceInterface.ListWithOutstandingFines
func (s *BorrowService) ListWithOutstandingFines(ctx context.Context) ([]model.BorrowRecordResponse, error) {
	records, err := s.repo.ListWithOutstandingFines(ctx)
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(records, time.Now()), nil
}

// SetFine implements ServiceInterface.SetFine
func (s *BorrowService) SetFine(ctx context.Context, recordID uuid.UUID, req model.UpdateFineRequest) (*model.BorrowRecordResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, model.ErrNegativeFine
	}
	if amount.IsNegative() {
		return nil, model.ErrNegativeFine
	}

	record, err := s.repo.SetFine(ctx, recordID, amount, req.Reason)
	if err != nil {
		return nil, err
	}

	logger.Info("fine adjusted", map[string]interface{}{
		"record_id": recordID.String(),
		"amount":    amount.String(),
	})

	resp := record.ToResponse(time.Now())
	return &resp, nil
}

// MarkFinePaid implements ServiceInterface.MarkFinePaid
func (s *BorrowService) MarkFinePaid(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error) {
	record, err := s.repo.MarkFinePaid(ctx, recordID)
	if err != nil {
		return nil, err
	}

	logger.Info("fine marked paid", map[string]interface{}{
		"record_id": recordID.String(),
		"amount":    record.FineAmount.String(),
	})

	resp := record.ToResponse(time.Now())
	return &resp, nil
}

// AccrueOverdueFines implements ServiceInterface.AccrueOverdueFines
func (s *BorrowService) AccrueOverdueFines(ctx context.Context) (int, error) {
	if s.fineRatePerDay.IsZero() {
		return 0, nil
	}

	return s.repo.AccrueOverdueFines(ctx, time.Now(), s.fineRatePerDay)
}
