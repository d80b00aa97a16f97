package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/config"
	"library-backend/internal/domains/borrow/model"
)

// fakeBook mirrors the copy counters the postgres repository moves
// inside the borrow and return transactions.
type fakeBook struct {
	total     int
	available int
}

// fakeRepository keeps borrow records in memory and mirrors the
// transactional semantics of the postgres repository closely enough
// for service-level tests. Books registered in the books map get their
// counters enforced; unknown book ids skip the availability check.
type fakeRepository struct {
	records     map[uuid.UUID]*model.BorrowRecord
	books       map[uuid.UUID]*fakeBook
	activeCount int
	borrowErr   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		records: make(map[uuid.UUID]*model.BorrowRecord),
		books:   make(map[uuid.UUID]*fakeBook),
	}
}

func (f *fakeRepository) Borrow(ctx context.Context, record *model.BorrowRecord) error {
	if f.borrowErr != nil {
		return f.borrowErr
	}
	if book, ok := f.books[record.BookID]; ok {
		if book.available <= 0 {
			return model.ErrBookUnavailable
		}
		book.available--
	}
	clone := *record
	f.records[record.ID] = &clone
	return nil
}

func (f *fakeRepository) Return(ctx context.Context, recordID uuid.UUID, returnedAt time.Time, ratePerDay decimal.Decimal) (*model.BorrowRecord, error) {
	record, ok := f.records[recordID]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	if record.ReturnedDate != nil {
		return nil, model.ErrAlreadyReturned
	}

	fine := model.CalculateFine(record.DueDate, returnedAt, ratePerDay)
	if record.FineAmount.GreaterThan(fine) {
		fine = record.FineAmount
	}

	record.ReturnedDate = &returnedAt
	record.Status = model.StatusReturned
	record.FineAmount = fine

	if book, ok := f.books[record.BookID]; ok && book.available < book.total {
		book.available++
	}
	return record, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecord, error) {
	record, ok := f.records[recordID]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeRepository) List(ctx context.Context, filter model.ListBorrowRecordsRequest) ([]model.BorrowRecord, int, error) {
	out := make([]model.BorrowRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.BorrowRecord, error) {
	var out []model.BorrowRecord
	for _, r := range f.records {
		if r.StudentID == studentID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepository) CountActiveByStudent(ctx context.Context, studentID uuid.UUID) (int, error) {
	return f.activeCount, nil
}

func (f *fakeRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]model.BorrowRecord, error) {
	var out []model.BorrowRecord
	for _, r := range f.records {
		if r.ReturnedDate == nil && asOf.After(r.DueDate) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListWithOutstandingFines(ctx context.Context) ([]model.BorrowRecord, error) {
	var out []model.BorrowRecord
	for _, r := range f.records {
		if r.FineAmount.IsPositive() && !r.FinePaid {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepository) SetFine(ctx context.Context, recordID uuid.UUID, amount decimal.Decimal, reason *string) (*model.BorrowRecord, error) {
	record, ok := f.records[recordID]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	record.FineAmount = amount
	record.FinePaid = false
	if reason != nil {
		note := *reason
		if record.Notes != nil {
			note = *record.Notes + "\n" + note
		}
		record.Notes = &note
	}
	return record, nil
}

func (f *fakeRepository) MarkFinePaid(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecord, error) {
	record, ok := f.records[recordID]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	if record.FinePaid {
		return nil, model.ErrFineAlreadyPaid
	}
	record.FinePaid = true
	return record, nil
}

func (f *fakeRepository) AccrueOverdueFines(ctx context.Context, asOf time.Time, ratePerDay decimal.Decimal) (int, error) {
	updated := 0
	for _, r := range f.records {
		if r.ReturnedDate != nil || r.FinePaid || !asOf.After(r.DueDate) {
			continue
		}
		accrued := model.CalculateFine(r.DueDate, asOf, ratePerDay)
		if accrued.GreaterThan(r.FineAmount) {
			r.FineAmount = accrued
			updated++
		}
	}
	return updated, nil
}

func testConfig() config.LibraryConfig {
	return config.LibraryConfig{
		FineRatePerDay:  "0.50",
		DefaultLoanDays: 14,
		MaxActiveLoans:  5,
	}
}

func TestBorrowDefaultsDueDate(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Borrow(context.Background(), model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    uuid.NewString(),
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusBorrowed, resp.Status)
	wantDue := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, wantDue, resp.DueDate, time.Minute)
	assert.Len(t, repo.records, 1)
}

func TestBorrowRejectsPastDueDate(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	past := time.Now().Add(-time.Hour)
	_, err := svc.Borrow(context.Background(), model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    uuid.NewString(),
		DueDate:   &past,
	})
	assert.ErrorIs(t, err, model.ErrInvalidDueDate)
	assert.Empty(t, repo.records)
}

func TestBorrowEnforcesLoanLimit(t *testing.T) {
	repo := newFakeRepository()
	repo.activeCount = 5
	svc := NewService(repo, testConfig())

	_, err := svc.Borrow(context.Background(), model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    uuid.NewString(),
	})
	assert.ErrorIs(t, err, model.ErrMaxLoansReached)
}

func TestBorrowPropagatesUnavailableBook(t *testing.T) {
	repo := newFakeRepository()
	repo.borrowErr = model.ErrBookUnavailable
	svc := NewService(repo, testConfig())

	_, err := svc.Borrow(context.Background(), model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    uuid.NewString(),
	})
	assert.ErrorIs(t, err, model.ErrBookUnavailable)
}

func TestBorrowReturnRestoresAvailability(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	bookID := uuid.New()
	repo.books[bookID] = &fakeBook{total: 2, available: 2}

	first, err := svc.Borrow(ctx, model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    bookID.String(),
	})
	require.NoError(t, err)

	_, err = svc.Borrow(ctx, model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    bookID.String(),
	})
	require.NoError(t, err)
	assert.Zero(t, repo.books[bookID].available, "both copies out")

	// Last copy gone, the next borrow must fail
	_, err = svc.Borrow(ctx, model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    bookID.String(),
	})
	assert.ErrorIs(t, err, model.ErrBookUnavailable)

	// Returning frees a copy and borrowing works again
	_, err = svc.Return(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.books[bookID].available)

	_, err = svc.Borrow(ctx, model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    bookID.String(),
	})
	require.NoError(t, err)
	assert.Zero(t, repo.books[bookID].available)
}

func TestReturnNeverRaisesAvailabilityAboveTotal(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	bookID := uuid.New()
	repo.books[bookID] = &fakeBook{total: 1, available: 1}

	// A stale ledger row for a copy the counters no longer track
	id := uuid.New()
	repo.records[id] = &model.BorrowRecord{
		ID:      id,
		BookID:  bookID,
		DueDate: time.Now().AddDate(0, 0, 7),
		Status:  model.StatusBorrowed,
	}

	_, err := svc.Return(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.books[bookID].available, "available copies stay bounded by total")
}

func TestReturnAccruesFineOnLateReturn(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	id := uuid.New()
	repo.records[id] = &model.BorrowRecord{
		ID:         id,
		StudentID:  uuid.New(),
		BookID:     uuid.New(),
		BorrowDate: time.Now().AddDate(0, 0, -17),
		DueDate:    time.Now().AddDate(0, 0, -3),
		Status:     model.StatusBorrowed,
		FineAmount: decimal.Zero,
	}

	resp, err := svc.Return(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, model.StatusReturned, resp.Status)
	want, _ := decimal.NewFromString("1.50")
	assert.True(t, want.Equal(resp.FineAmount), "want fine %s, got %s", want, resp.FineAmount)
}

func TestReturnKeepsHigherManualFine(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	manual, _ := decimal.NewFromString("25.00")
	id := uuid.New()
	repo.records[id] = &model.BorrowRecord{
		ID:         id,
		StudentID:  uuid.New(),
		BookID:     uuid.New(),
		DueDate:    time.Now().AddDate(0, 0, -2),
		Status:     model.StatusBorrowed,
		FineAmount: manual,
	}

	resp, err := svc.Return(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, manual.Equal(resp.FineAmount), "manual fine must not be lowered, got %s", resp.FineAmount)
}

func TestReturnTwiceFails(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	id := uuid.New()
	repo.records[id] = &model.BorrowRecord{
		ID:      id,
		DueDate: time.Now().AddDate(0, 0, 7),
		Status:  model.StatusBorrowed,
	}

	_, err := svc.Return(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrAlreadyReturned)
}

func TestSetFineAppendsReasonToNotes(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	id := uuid.New()
	repo.records[id] = &model.BorrowRecord{
		ID:      id,
		DueDate: time.Now().AddDate(0, 0, 7),
		Status:  model.StatusBorrowed,
	}

	reason := "water damage on cover"
	resp, err := svc.SetFine(context.Background(), id, model.UpdateFineRequest{
		Amount: "10.00",
		Reason: &reason,
	})
	require.NoError(t, err)

	want, _ := decimal.NewFromString("10.00")
	assert.True(t, want.Equal(resp.FineAmount))
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, reason)
}

func TestSetFineRejectsNegativeAmount(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	_, err := svc.SetFine(context.Background(), uuid.New(), model.UpdateFineRequest{Amount: "-1.00"})
	assert.ErrorIs(t, err, model.ErrNegativeFine)
}

func TestMarkFinePaidTwiceFails(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	fine, _ := decimal.NewFromString("2.00")
	id := uuid.New()
	repo.records[id] = &model.BorrowRecord{
		ID:         id,
		DueDate:    time.Now(),
		Status:     model.StatusBorrowed,
		FineAmount: fine,
	}

	_, err := svc.MarkFinePaid(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.MarkFinePaid(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrFineAlreadyPaid)
}

func TestAccrueOverdueFinesSkippedWhenRateIsZero(t *testing.T) {
	repo := newFakeRepository()
	cfg := testConfig()
	cfg.FineRatePerDay = "0"
	svc := NewService(repo, cfg)

	id := uuid.New()
	repo.records[id] = &model.BorrowRecord{
		ID:      id,
		DueDate: time.Now().AddDate(0, 0, -5),
		Status:  model.StatusBorrowed,
	}

	updated, err := svc.AccrueOverdueFines(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
}
