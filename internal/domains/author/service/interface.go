package service

import (
	"context"

	"library-backend/internal/domains/author/model"
)

// ServiceInterface defines the author use cases.
type ServiceInterface interface {
	// GetAuthor loads one author. Books are loaded only when withBooks is set.
	GetAuthor(ctx context.Context, id int64, withBooks bool) (*model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)
	UpdateAuthor(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error
}
