package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface is the catalog business logic
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	GetByISBN(ctx context.Context, isbn string) (*model.BookResponse, error)
	List(ctx context.Context, filter model.ListBooksRequest) ([]model.BookResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPopular(ctx context.Context, limit int) ([]model.BookResponse, error)
	SetCoverImage(ctx context.Context, id uuid.UUID, url string) error
}
