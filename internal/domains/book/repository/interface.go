package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface defines data access for books.
type RepositoryInterface interface {
	// FindByIDWithAssociations loads the book with the libraries holding it.
	// Returns model.ErrBookNotFound when no book has id.
	FindByIDWithAssociations(ctx context.Context, id int64) (*model.Book, error)
	// FindAll loads every book without associations, ordered by id.
	FindAll(ctx context.Context) ([]model.Book, error)
	Create(ctx context.Context, b *model.Book) (int64, error)
	// Update replaces title, author and release date.
	Update(ctx context.Context, id int64, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
}
