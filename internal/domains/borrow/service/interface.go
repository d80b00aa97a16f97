package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/borrow/model"
)

// ServiceInterface is the borrow ledger business logic
type ServiceInterface interface {
	Borrow(ctx context.Context, req model.CreateBorrowRequest) (*model.BorrowRecordResponse, error)
	Return(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error)
	GetByID(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error)
	List(ctx context.Context, filter model.ListBorrowRecordsRequest) ([]model.BorrowRecordResponse, int, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.BorrowRecordResponse, error)
	ListOverdue(ctx context.Context) ([]model.BorrowRecordResponse, error)
	ListWithOutstandingFines(ctx context.Context) ([]model.BorrowRecordResponse, error)
	SetFine(ctx context.Context, recordID uuid.UUID, req model.UpdateFineRequest) (*model.BorrowRecordResponse, error)
	MarkFinePaid(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error)

	// AccrueOverdueFines is invoked by the background sweep; it raises
	// stored fines on open overdue records to the current accrual.
	AccrueOverdueFines(ctx context.Context) (int, error)
}
