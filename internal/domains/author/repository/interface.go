package repository

import (
	"context"

	"library-backend/internal/domains/author/model"
)

// RepositoryInterface defines data access for authors.
type RepositoryInterface interface {
	// FindByIDWithoutAssociations loads the author row only; Books stays nil.
	FindByIDWithoutAssociations(ctx context.Context, id int64) (*model.Author, error)
	// FindByIDWithAssociations loads the author with every book written.
	FindByIDWithAssociations(ctx context.Context, id int64) (*model.Author, error)
	// FindAll loads every author with books, ordered by author id.
	FindAll(ctx context.Context) ([]model.Author, error)
	Create(ctx context.Context, a *model.Author) (int64, error)
	Update(ctx context.Context, id int64, a *model.Author) error
	Delete(ctx context.Context, id int64) (bool, error)
}
