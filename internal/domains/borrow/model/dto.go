package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBorrowRequest opens a new borrow record. DueDate is optional;
// when omitted the service applies the configured default loan window.
type CreateBorrowRequest struct {
	StudentID string     `json:"student_id"`
	BookID    string     `json:"book_id"`
	DueDate   *time.Time `json:"due_date"`
	Notes     *string    `json:"notes"`
}

// Validate validates CreateBorrowRequest
func (r CreateBorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StudentID,
			validation.Required.Error("student_id is required"),
			is.UUIDv4.Error("student_id must be a valid UUID"),
		),
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
			is.UUIDv4.Error("book_id must be a valid UUID"),
		),
	)
}

// UpdateFineRequest sets a manual fine on a record, overriding whatever
// the ledger has accrued so far.
type UpdateFineRequest struct {
	Amount string  `json:"amount"`
	Reason *string `json:"reason"`
}

// Validate validates UpdateFineRequest
func (r UpdateFineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount,
			validation.Required.Error("amount is required"),
			is.Float.Error("amount must be a decimal number"),
		),
	)
}

// ListBorrowRecordsRequest filters the ledger listing
type ListBorrowRecordsRequest struct {
	StudentID *uuid.UUID `form:"student_id"`
	BookID    *uuid.UUID `form:"book_id"`
	Status    string     `form:"status"`
	Page      int        `form:"page,default=1"`
	Limit     int        `form:"limit,default=20"`
}

// BorrowRecordResponse is a ledger row as returned to clients. Status is
// the effective status, so open-but-late records read as OVERDUE.
type BorrowRecordResponse struct {
	ID           uuid.UUID       `json:"id"`
	StudentID    uuid.UUID       `json:"student_id"`
	BookID       uuid.UUID       `json:"book_id"`
	BorrowDate   time.Time       `json:"borrow_date"`
	DueDate      time.Time       `json:"due_date"`
	ReturnedDate *time.Time      `json:"returned_date,omitempty"`
	Status       string          `json:"status"`
	DaysLate     int64           `json:"days_late"`
	FineAmount   decimal.Decimal `json:"fine_amount"`
	FinePaid     bool            `json:"fine_paid"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToResponse converts the entity to its response DTO, resolving the
// effective status and lateness against the given clock.
func (r *BorrowRecord) ToResponse(now time.Time) BorrowRecordResponse {
	lateRef := now
	if r.ReturnedDate != nil {
		lateRef = *r.ReturnedDate
	}

	return BorrowRecordResponse{
		ID:           r.ID,
		StudentID:    r.StudentID,
		BookID:       r.BookID,
		BorrowDate:   r.BorrowDate,
		DueDate:      r.DueDate,
		ReturnedDate: r.ReturnedDate,
		Status:       r.EffectiveStatus(now),
		DaysLate:     DaysLate(r.DueDate, lateRef),
		FineAmount:   r.FineAmount,
		FinePaid:     r.FinePaid,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}

// ToResponseList converts a slice of entities
func ToResponseList(records []BorrowRecord, now time.Time) []BorrowRecordResponse {
	result := make([]BorrowRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, records[i].ToResponse(now))
	}
	return result
}
