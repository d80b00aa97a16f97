package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/announcement/model"
)

// RepositoryInterface defines the announcement persistence contract
type RepositoryInterface interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Announcement, error)
	ListAll(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, announcement *model.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error

	// PurgeExpired deletes announcements whose expiry passed before the
	// cutoff. Returns the number of rows removed.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const announcementColumns = `id, title, body, librarian_id, pinned, expires_at, created_at, updated_at`

func scanAnnouncement(row pgx.Row, a *model.Announcement) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.LibrarianID,
		&a.Pinned,
		&a.ExpiresAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	query := `
		INSERT INTO announcements (
			id, title, body, librarian_id, pinned, expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		announcement.ID,
		announcement.Title,
		announcement.Body,
		announcement.LibrarianID,
		announcement.Pinned,
		announcement.ExpiresAt,
		announcement.CreatedAt,
		announcement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert announcement: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	var announcement model.Announcement
	if err := scanAnnouncement(r.pool.QueryRow(ctx, query, id), &announcement); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewAnnouncementNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	return &announcement, nil
}

// ListActive implements RepositoryInterface.ListActive
func (r *postgresRepository) ListActive(ctx context.Context, now time.Time) ([]model.Announcement, error) {
	query := `
		SELECT ` + announcementColumns + `
		FROM announcements
		WHERE expires_at IS NULL OR expires_at > $1
		ORDER BY pinned DESC, created_at DESC
	`
	return r.queryAnnouncements(ctx, query, now)
}

// ListAll implements RepositoryInterface.ListAll
func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements ORDER BY created_at DESC`
	return r.queryAnnouncements(ctx, query)
}

// Update implements RepositoryInterface.Update
func (r *postgresRepository) Update(ctx context.Context, announcement *model.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, body = $2, pinned = $3, expires_at = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := r.pool.Exec(ctx, query,
		announcement.Title,
		announcement.Body,
		announcement.Pinned,
		announcement.ExpiresAt,
		announcement.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAnnouncementNotFoundError(announcement.ID)
	}

	return nil
}

// Delete implements RepositoryInterface.Delete
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewAnnouncementNotFoundError(id)
	}

	return nil
}

// PurgeExpired implements RepositoryInterface.PurgeExpired
func (r *postgresRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE expires_at IS NOT NULL AND expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired announcements: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *postgresRepository) queryAnnouncements(ctx context.Context, query string, args ...interface{}) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	var result []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := scanAnnouncement(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}
