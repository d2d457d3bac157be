package repository

import (
	"context"

	"library-backend/internal/domains/library/model"
)

// RepositoryInterface defines data access for libraries.
type RepositoryInterface interface {
	// FindByID loads the library with its info and the books it holds.
	FindByID(ctx context.Context, id int64) (*model.Library, error)
	// FindByIDWithHoldings is FindByID where every book also lists all the
	// libraries holding it.
	FindByIDWithHoldings(ctx context.Context, id int64) (*model.Library, error)
	// FindAll loads every library with info and books, ordered by id.
	FindAll(ctx context.Context) ([]model.Library, error)
	Create(ctx context.Context, l *model.Library) (int64, error)
	Update(ctx context.Context, id int64, l *model.Library) error
	Delete(ctx context.Context, id int64) (bool, error)
	// AddBook records that the library holds the book. Adding a held book is a no-op.
	AddBook(ctx context.Context, libraryID, bookID int64) error
	RemoveBook(ctx context.Context, libraryID, bookID int64) (bool, error)
}
