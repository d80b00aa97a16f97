package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface is the data access contract for the catalog.
// available_copies is never written here: only the borrow ledger moves
// it, inside its own transaction.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*model.Book, error)
	List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListPopular returns books ordered by lifetime borrow count
	ListPopular(ctx context.Context, limit int) ([]model.Book, error)

	// SetCoverImageURL stores the uploaded cover location
	SetCoverImageURL(ctx context.Context, id uuid.UUID, url string) error
}
