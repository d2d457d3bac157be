package service

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface defines the book use cases.
type ServiceInterface interface {
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}
