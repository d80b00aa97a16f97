package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/borrow/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const recordColumns = `id, student_id, book_id, borrow_date, due_date, returned_date, status, fine_amount, fine_paid, notes, created_at, updated_at`

func scanRecord(row pgx.Row, r *model.BorrowRecord) error {
	return row.Scan(
		&r.ID,
		&r.StudentID,
		&r.BookID,
		&r.BorrowDate,
		&r.DueDate,
		&r.ReturnedDate,
		&r.Status,
		&r.FineAmount,
		&r.FinePaid,
		&r.Notes,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
}

// Borrow implements RepositoryInterface.Borrow
func (r *postgresRepository) Borrow(ctx context.Context, record *model.BorrowRecord) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Lock the book row so two concurrent borrows of the last copy
		// cannot both pass the availability check
		var available int
		lockQuery := `SELECT available_copies FROM books WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, record.BookID).Scan(&available); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrBookNotFound
			}
			return fmt.Errorf("failed to lock book: %w", err)
		}

		if available <= 0 {
			return model.ErrBookUnavailable
		}

		updateQuery := `
			UPDATE books
			SET available_copies = available_copies - 1,
			    total_borrows = total_borrows + 1,
			    updated_at = NOW()
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, updateQuery, record.BookID); err != nil {
			return fmt.Errorf("failed to decrement available copies: %w", err)
		}

		insertQuery := `
			INSERT INTO borrow_records (
				id, student_id, book_id, borrow_date, due_date, returned_date,
				status, fine_amount, fine_paid, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, NULL, $6, $7, FALSE, $8, $9, $10)
		`
		_, err := tx.Exec(ctx, insertQuery,
			record.ID,
			record.StudentID,
			record.BookID,
			record.BorrowDate,
			record.DueDate,
			record.Status,
			record.FineAmount,
			record.Notes,
			record.CreatedAt,
			record.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				if strings.Contains(pgErr.ConstraintName, "student") {
					return model.ErrStudentNotFound
				}
				return model.ErrBookNotFound
			}
			return fmt.Errorf("failed to insert borrow record: %w", err)
		}

		return nil
	})
}

// Return implements RepositoryInterface.Return
func (r *postgresRepository) Return(ctx context.Context, recordID uuid.UUID, returnedAt time.Time, ratePerDay decimal.Decimal) (*model.BorrowRecord, error) {
	var returned model.BorrowRecord

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + recordColumns + ` FROM borrow_records WHERE id = $1 FOR UPDATE`

		var existing model.BorrowRecord
		if err := scanRecord(tx.QueryRow(ctx, lockQuery, recordID), &existing); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.NewRecordNotFoundError(recordID)
			}
			return fmt.Errorf("failed to lock borrow record: %w", err)
		}

		if existing.ReturnedDate != nil {
			return model.ErrAlreadyReturned
		}

		// A manual fine set higher than the accrual stands
		fine := model.CalculateFine(existing.DueDate, returnedAt, ratePerDay)
		if existing.FineAmount.GreaterThan(fine) {
			fine = existing.FineAmount
		}

		updateQuery := `
			UPDATE borrow_records
			SET returned_date = $1, status = $2, fine_amount = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING ` + recordColumns + `
		`
		if err := scanRecord(tx.QueryRow(ctx, updateQuery, returnedAt, model.StatusReturned, fine, recordID), &returned); err != nil {
			return fmt.Errorf("failed to close borrow record: %w", err)
		}

		bookQuery := `
			UPDATE books
			SET available_copies = LEAST(available_copies + 1, total_copies),
			    updated_at = NOW()
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, bookQuery, existing.BookID); err != nil {
			return fmt.Errorf("failed to increment available copies: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &returned, nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM borrow_records WHERE id = $1`

	var record model.BorrowRecord
	if err := scanRecord(r.pool.QueryRow(ctx, query, recordID), &record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewRecordNotFoundError(recordID)
		}
		return nil, fmt.Errorf("failed to get borrow record: %w", err)
	}

	return &record, nil
}

// statusCondition translates a status filter into a SQL predicate.
// OVERDUE and ACTIVE are views over open records, not stored values,
// so they compile to due-date and returned-date checks.
func statusCondition(status string) string {
	switch strings.ToUpper(status) {
	case model.StatusBorrowed:
		return " AND returned_date IS NULL AND due_date >= NOW()"
	case model.StatusOverdue:
		return " AND returned_date IS NULL AND due_date < NOW()"
	case model.StatusActive:
		return " AND returned_date IS NULL"
	case model.StatusReturned:
		return " AND returned_date IS NOT NULL"
	}
	return ""
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListBorrowRecordsRequest) ([]model.BorrowRecord, int, error) {
	queryBuilder := `SELECT ` + recordColumns + ` FROM borrow_records WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM borrow_records WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filter.StudentID != nil {
		queryBuilder += fmt.Sprintf(" AND student_id = $%d", argCount)
		countQuery += fmt.Sprintf(" AND student_id = $%d", argCount)
		args = append(args, *filter.StudentID)
		argCount++
	}

	if filter.BookID != nil {
		queryBuilder += fmt.Sprintf(" AND book_id = $%d", argCount)
		countQuery += fmt.Sprintf(" AND book_id = $%d", argCount)
		args = append(args, *filter.BookID)
		argCount++
	}

	if cond := statusCondition(filter.Status); cond != "" {
		queryBuilder += cond
		countQuery += cond
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count borrow records: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	queryBuilder += fmt.Sprintf(" ORDER BY borrow_date DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list borrow records: %w", err)
	}
	defer rows.Close()

	var result []model.BorrowRecord
	for rows.Next() {
		var rec model.BorrowRecord
		if err := scanRecord(rows, &rec); err != nil {
			return nil, 0, fmt.Errorf("failed to scan borrow record: %w", err)
		}
		result = append(result, rec)
	}

	return result, totalCount, rows.Err()
}

// ListByStudent implements RepositoryInterface.ListByStudent
func (r *postgresRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.BorrowRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM borrow_records
		WHERE student_id = $1
		ORDER BY borrow_date DESC
	`
	return r.queryRecords(ctx, query, studentID)
}

// CountActiveByStudent implements RepositoryInterface.CountActiveByStudent
func (r *postgresRepository) CountActiveByStudent(ctx context.Context, studentID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM borrow_records WHERE student_id = $1 AND returned_date IS NULL`
	if err := r.pool.QueryRow(ctx, query, studentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active borrows: %w", err)
	}
	return count, nil
}

// ListOverdue implements RepositoryInterface.ListOverdue
func (r *postgresRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]model.BorrowRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM borrow_records
		WHERE returned_date IS NULL AND due_date < $1
		ORDER BY due_date ASC
	`
	return r.queryRecords(ctx, query, asOf)
}

// ListWithOutstandingFines implements RepositoryInterface.ListWithOutstandingFines
func (r *postgresRepository) ListWithOutstandingFines(ctx context.Context) ([]model.BorrowRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM borrow_records
		WHERE fine_amount > 0 AND fine_paid = FALSE
		ORDER BY fine_amount DESC
	`
	return r.queryRecords(ctx, query)
}

// SetFine implements RepositoryInterface.SetFine
func (r *postgresRepository) SetFine(ctx context.Context, recordID uuid.UUID, amount decimal.Decimal, reason *string) (*model.BorrowRecord, error) {
	query := `
		UPDATE borrow_records
		SET fine_amount = $1,
		    fine_paid = FALSE,
		    notes = CASE
		        WHEN $2::text IS NULL THEN notes
		        ELSE COALESCE(notes || E'\n', '') || $2::text
		    END,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING ` + recordColumns + `
	`

	var record model.BorrowRecord
	if err := scanRecord(r.pool.QueryRow(ctx, query, amount, reason, recordID), &record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewRecordNotFoundError(recordID)
		}
		return nil, fmt.Errorf("failed to set fine: %w", err)
	}

	return &record, nil
}

// MarkFinePaid implements RepositoryInterface.MarkFinePaid
func (r *postgresRepository) MarkFinePaid(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecord, error) {
	var paid model.BorrowRecord

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + recordColumns + ` FROM borrow_records WHERE id = $1 FOR UPDATE`

		var existing model.BorrowRecord
		if err := scanRecord(tx.QueryRow(ctx, lockQuery, recordID), &existing); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.NewRecordNotFoundError(recordID)
			}
			return fmt.Errorf("failed to lock borrow record: %w", err)
		}

		if existing.FinePaid {
			return model.ErrFineAlreadyPaid
		}

		// The amount stays on the row for the ledger history
		updateQuery := `
			UPDATE borrow_records
			SET fine_paid = TRUE, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + recordColumns + `
		`
		if err := scanRecord(tx.QueryRow(ctx, updateQuery, recordID), &paid); err != nil {
			return fmt.Errorf("failed to mark fine paid: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &paid, nil
}

// AccrueOverdueFines implements RepositoryInterface.AccrueOverdueFines
func (r *postgresRepository) AccrueOverdueFines(ctx context.Context, asOf time.Time, ratePerDay decimal.Decimal) (int, error) {
	// GREATEST keeps a higher manual fine in place; the extra predicate
	// keeps RowsAffected meaningful as "records actually raised"
	query := `
		UPDATE borrow_records
		SET fine_amount = FLOOR(EXTRACT(EPOCH FROM ($1::timestamptz - due_date)) / 86400)::numeric * $2::numeric,
		    updated_at = NOW()
		WHERE returned_date IS NULL
		  AND fine_paid = FALSE
		  AND due_date < $1
		  AND fine_amount < FLOOR(EXTRACT(EPOCH FROM ($1::timestamptz - due_date)) / 86400)::numeric * $2::numeric
	`

	tag, err := r.pool.Exec(ctx, query, asOf, ratePerDay)
	if err != nil {
		return 0, fmt.Errorf("failed to accrue overdue fines: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *postgresRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]model.BorrowRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrow records: %w", err)
	}
	defer rows.Close()

	var result []model.BorrowRecord
	for rows.Next() {
		var rec model.BorrowRecord
		if err := scanRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan borrow record: %w", err)
		}
		result = append(result, rec)
	}

	return result, rows.Err()
}
