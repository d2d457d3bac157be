package service

import (
	"context"

	"library-backend/internal/domains/library/model"
)

// ServiceInterface defines the library use cases.
type ServiceInterface interface {
	GetLibrary(ctx context.Context, id int64) (*model.Library, error)
	// GetLibraryHoldings loads the library with, per book, every library holding it.
	GetLibraryHoldings(ctx context.Context, id int64) (*model.Library, error)
	ListLibraries(ctx context.Context) ([]model.Library, error)
	CreateLibrary(ctx context.Context, req model.CreateLibraryRequest) (*model.Library, error)
	UpdateLibrary(ctx context.Context, id int64, req model.UpdateLibraryRequest) (*model.Library, error)
	DeleteLibrary(ctx context.Context, id int64) error
	AddBook(ctx context.Context, libraryID, bookID int64) (*model.Library, error)
	RemoveBook(ctx context.Context, libraryID, bookID int64) error
}
