package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/entry/model"
	"library-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface.
// The library_entries table carries a partial unique index on
// (student_id) WHERE exit_time IS NULL; a violation means the student
// is already inside, regardless of how the two requests interleave.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const entryColumns = `id, student_id, entry_time, exit_time, entry_method, entry_capture_ref, exit_capture_ref, notes, created_at, updated_at`

func scanEntry(row pgx.Row, e *model.LibraryEntry) error {
	return row.Scan(
		&e.ID,
		&e.StudentID,
		&e.EntryTime,
		&e.ExitTime,
		&e.EntryMethod,
		&e.EntryCaptureRef,
		&e.ExitCaptureRef,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

// CreateOpen implements RepositoryInterface.CreateOpen
func (r *postgresRepository) CreateOpen(ctx context.Context, entry *model.LibraryEntry) error {
	query := `
		INSERT INTO library_entries (
			id, student_id, entry_time, exit_time, entry_method,
			entry_capture_ref, exit_capture_ref, notes, created_at, updated_at
		) VALUES ($1, $2, $3, NULL, $4, $5, NULL, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.StudentID,
		entry.EntryTime,
		entry.EntryMethod,
		entry.EntryCaptureRef,
		entry.Notes,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on open-entry index
			return model.ErrAlreadyInside
		}
		return fmt.Errorf("failed to insert library entry: %w", err)
	}

	return nil
}

// CloseOpen implements RepositoryInterface.CloseOpen
func (r *postgresRepository) CloseOpen(ctx context.Context, studentID uuid.UUID, exitTime time.Time, captureRef *string) (*model.LibraryEntry, error) {
	var closed model.LibraryEntry

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Lock the open row so a concurrent exit cannot close it twice
		lockQuery := `
			SELECT ` + entryColumns + `
			FROM library_entries
			WHERE student_id = $1 AND exit_time IS NULL
			ORDER BY entry_time DESC
			LIMIT 1
			FOR UPDATE
		`

		var open model.LibraryEntry
		if err := scanEntry(tx.QueryRow(ctx, lockQuery, studentID), &open); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotInside
			}
			return fmt.Errorf("failed to lock open entry: %w", err)
		}

		updateQuery := `
			UPDATE library_entries
			SET exit_time = $1, exit_capture_ref = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING ` + entryColumns + `
		`
		if err := scanEntry(tx.QueryRow(ctx, updateQuery, exitTime, captureRef, open.ID), &closed); err != nil {
			return fmt.Errorf("failed to close entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &closed, nil
}

// CloseByID implements RepositoryInterface.CloseByID
func (r *postgresRepository) CloseByID(ctx context.Context, entryID uuid.UUID, exitTime time.Time, captureRef *string) (*model.LibraryEntry, error) {
	var closed model.LibraryEntry

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		lockQuery := `
			SELECT ` + entryColumns + `
			FROM library_entries
			WHERE id = $1
			FOR UPDATE
		`

		var existing model.LibraryEntry
		if err := scanEntry(tx.QueryRow(ctx, lockQuery, entryID), &existing); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.NewEntryNotFoundError(entryID)
			}
			return fmt.Errorf("failed to lock entry: %w", err)
		}

		if existing.ExitTime != nil {
			return model.ErrEntryAlreadyClosed
		}

		updateQuery := `
			UPDATE library_entries
			SET exit_time = $1, exit_capture_ref = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING ` + entryColumns + `
		`
		if err := scanEntry(tx.QueryRow(ctx, updateQuery, exitTime, captureRef, entryID), &closed); err != nil {
			return fmt.Errorf("failed to close entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &closed, nil
}

// CloseAllOpen implements RepositoryInterface.CloseAllOpen
func (r *postgresRepository) CloseAllOpen(ctx context.Context, exitTime time.Time, captureRef string) (int, error) {
	query := `
		UPDATE library_entries
		SET exit_time = $1, exit_capture_ref = $2, updated_at = NOW()
		WHERE exit_time IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, exitTime, captureRef)
	if err != nil {
		return 0, fmt.Errorf("failed to close open entries: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, entryID uuid.UUID) (*model.LibraryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM library_entries WHERE id = $1`

	var entry model.LibraryEntry
	if err := scanEntry(r.pool.QueryRow(ctx, query, entryID), &entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewEntryNotFoundError(entryID)
		}
		return nil, fmt.Errorf("failed to get entry by id: %w", err)
	}

	return &entry, nil
}

// ListOpen implements RepositoryInterface.ListOpen
func (r *postgresRepository) ListOpen(ctx context.Context) ([]model.LibraryEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM library_entries
		WHERE exit_time IS NULL
		ORDER BY entry_time ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open entries: %w", err)
	}
	defer rows.Close()

	var result []model.LibraryEntry
	for rows.Next() {
		var e model.LibraryEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		result = append(result, e)
	}

	return result, rows.Err()
}

// CountOpen implements RepositoryInterface.CountOpen
func (r *postgresRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM library_entries WHERE exit_time IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open entries: %w", err)
	}
	return count, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListEntriesRequest) ([]model.LibraryEntry, int, error) {
	queryBuilder := `SELECT ` + entryColumns + ` FROM library_entries WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM library_entries WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filter.StudentID != nil {
		queryBuilder += fmt.Sprintf(" AND student_id = $%d", argCount)
		countQuery += fmt.Sprintf(" AND student_id = $%d", argCount)
		args = append(args, *filter.StudentID)
		argCount++
	}

	if filter.From != nil {
		queryBuilder += fmt.Sprintf(" AND entry_time >= $%d", argCount)
		countQuery += fmt.Sprintf(" AND entry_time >= $%d", argCount)
		args = append(args, *filter.From)
		argCount++
	}

	if filter.To != nil {
		queryBuilder += fmt.Sprintf(" AND entry_time <= $%d", argCount)
		countQuery += fmt.Sprintf(" AND entry_time <= $%d", argCount)
		args = append(args, *filter.To)
		argCount++
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	queryBuilder += fmt.Sprintf(" ORDER BY entry_time DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var result []model.LibraryEntry
	for rows.Next() {
		var e model.LibraryEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, 0, fmt.Errorf("failed to scan entry: %w", err)
		}
		result = append(result, e)
	}

	return result, totalCount, rows.Err()
}
