package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statuses persisted on a borrow record. OVERDUE is never stored; it is
// derived from the due date at read time so records go overdue the moment
// the clock passes the deadline, with no sweep required.
const (
	StatusBorrowed = "BORROWED"
	StatusReturned = "RETURNED"
	StatusOverdue  = "OVERDUE"
)

// StatusActive is accepted as a list filter only: every record whose
// copy is still out, overdue or not.
const StatusActive = "ACTIVE"

// BorrowRecord is one lending of one book copy to one student.
type BorrowRecord struct {
	ID           uuid.UUID       `json:"id"`
	StudentID    uuid.UUID       `json:"student_id"`
	BookID       uuid.UUID       `json:"book_id"`
	BorrowDate   time.Time       `json:"borrow_date"`
	DueDate      time.Time       `json:"due_date"`
	ReturnedDate *time.Time      `json:"returned_date,omitempty"`
	Status       string          `json:"status"`
	FineAmount   decimal.Decimal `json:"fine_amount"`
	FinePaid     bool            `json:"fine_paid"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsReturned reports whether the copy has come back.
func (r *BorrowRecord) IsReturned() bool {
	return r.ReturnedDate != nil
}

// EffectiveStatus resolves the stored status against the clock. An open
// record whose due date has passed reads as OVERDUE even though the row
// still says BORROWED.
func (r *BorrowRecord) EffectiveStatus(now time.Time) string {
	if r.ReturnedDate != nil {
		return StatusReturned
	}
	if now.After(r.DueDate) {
		return StatusOverdue
	}
	return StatusBorrowed
}

// DaysLate is the number of whole 24-hour periods between the due date
// and the reference time. Partial days do not count.
func DaysLate(dueDate, at time.Time) int64 {
	if !at.After(dueDate) {
		return 0
	}
	return int64(at.Sub(dueDate).Hours() / 24)
}

// CalculateFine computes the accrued fine for a return at the given time:
// ratePerDay for every full day past the due date, zero for on-time or
// same-day-late returns.
func CalculateFine(dueDate, returnedAt time.Time, ratePerDay decimal.Decimal) decimal.Decimal {
	days := DaysLate(dueDate, returnedAt)
	if days <= 0 {
		return decimal.Zero
	}
	return ratePerDay.Mul(decimal.NewFromInt(days))
}
