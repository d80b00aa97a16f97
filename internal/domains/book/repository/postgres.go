package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book/model"
)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const bookColumns = `id, title, author, isbn, publisher, publication_year, category, location_code,
	description, cover_image_url, total_copies, available_copies, total_borrows, notes, created_at, updated_at`

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.ISBN,
		&b.Publisher,
		&b.PublicationYear,
		&b.Category,
		&b.LocationCode,
		&b.Description,
		&b.CoverImageURL,
		&b.TotalCopies,
		&b.AvailableCopies,
		&b.TotalBorrows,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, isbn, publisher, publication_year, category, location_code,
			description, total_copies, available_copies, total_borrows, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN,
		book.Publisher,
		book.PublicationYear,
		book.Category,
		book.LocationCode,
		book.Description,
		book.TotalCopies,
		book.AvailableCopies,
		book.TotalBorrows,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on isbn
			return model.ErrISBNExists
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var book model.Book
	if err := scanBook(r.pool.QueryRow(ctx, query, id), &book); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return &book, nil
}

// GetByISBN implements RepositoryInterface.GetByISBN
func (r *postgresRepository) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	var book model.Book
	if err := scanBook(r.pool.QueryRow(ctx, query, isbn), &book); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: isbn=%s", model.ErrBookNotFound, isbn)
		}
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}

	return &book, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	queryBuilder := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM books WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		clause := fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR isbn = $%d)", argCount, argCount, argCount+1)
		queryBuilder += clause
		countQuery += clause
		args = append(args, "%"+filter.Search+"%", filter.Search)
		argCount += 2
	}

	if filter.Category != "" {
		queryBuilder += fmt.Sprintf(" AND category = $%d", argCount)
		countQuery += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, filter.Category)
		argCount++
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	queryBuilder += fmt.Sprintf(" ORDER BY title ASC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var result []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		result = append(result, b)
	}

	return result, totalCount, rows.Err()
}

// Update implements RepositoryInterface.Update
func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, publisher = $3, publication_year = $4, category = $5,
			location_code = $6, description = $7, total_copies = $8, available_copies = $9,
			notes = $10, updated_at = NOW()
		WHERE id = $11
	`

	tag, err := r.pool.Exec(ctx, query,
		book.Title,
		book.Author,
		book.Publisher,
		book.PublicationYear,
		book.Category,
		book.LocationCode,
		book.Description,
		book.TotalCopies,
		book.AvailableCopies,
		book.Notes,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewBookNotFoundError(book.ID)
	}

	return nil
}

// Delete implements RepositoryInterface.Delete
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation from borrow_records
			return model.ErrBookHasActiveBorrows
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewBookNotFoundError(id)
	}

	return nil
}

// ListPopular implements RepositoryInterface.ListPopular
func (r *postgresRepository) ListPopular(ctx context.Context, limit int) ([]model.Book, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY total_borrows DESC, title ASC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular books: %w", err)
	}
	defer rows.Close()

	var result []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		result = append(result, b)
	}

	return result, rows.Err()
}

// SetCoverImageURL implements RepositoryInterface.SetCoverImageURL
func (r *postgresRepository) SetCoverImageURL(ctx context.Context, id uuid.UUID, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE books SET cover_image_url = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("failed to set cover image: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewBookNotFoundError(id)
	}

	return nil
}
