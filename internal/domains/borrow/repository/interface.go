package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/borrow/model"
)

// RepositoryInterface defines the borrow ledger persistence contract.
// Borrow and Return are transactional: they adjust the book's copy
// counters and the ledger row atomically.
type RepositoryInterface interface {
	// Borrow inserts an open record and decrements the book's available
	// copies under a row lock. Returns ErrBookUnavailable when no copy
	// is free, ErrStudentNotFound / ErrBookNotFound on dangling refs.
	Borrow(ctx context.Context, record *model.BorrowRecord) error

	// Return closes an open record, computes the accrued fine at the
	// given rate (never lowering a higher manual fine), and increments
	// the book's available copies. Returns ErrAlreadyReturned when the
	// record is already closed.
	Return(ctx context.Context, recordID uuid.UUID, returnedAt time.Time, ratePerDay decimal.Decimal) (*model.BorrowRecord, error)

	GetByID(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecord, error)
	List(ctx context.Context, filter model.ListBorrowRecordsRequest) ([]model.BorrowRecord, int, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.BorrowRecord, error)
	CountActiveByStudent(ctx context.Context, studentID uuid.UUID) (int, error)

	// ListOverdue returns open records whose due date has passed asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.BorrowRecord, error)

	// ListWithOutstandingFines returns records carrying an unpaid fine.
	ListWithOutstandingFines(ctx context.Context) ([]model.BorrowRecord, error)

	// SetFine overrides the fine amount on a record (manual adjustment).
	// A non-nil reason is appended to the record's notes.
	SetFine(ctx context.Context, recordID uuid.UUID, amount decimal.Decimal, reason *string) (*model.BorrowRecord, error)

	// MarkFinePaid flags the fine as settled; the amount is kept for the
	// ledger history.
	MarkFinePaid(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecord, error)

	// AccrueOverdueFines raises the stored fine on every open overdue
	// unpaid record to the amount accrued asOf. Amounts already at or
	// above the accrual (manual fines) are left alone. Returns the
	// number of rows touched.
	AccrueOverdueFines(ctx context.Context, asOf time.Time, ratePerDay decimal.Decimal) (int, error)
}
