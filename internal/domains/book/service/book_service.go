package service

import (
	"context"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/pkg/logger"
)

type BookService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &BookService{repo: repo}
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}
	return s.repo.FindByIDWithAssociations(ctx, id)
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := req.ToBook()
	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	b.Libraries = []model.LibraryRef{}

	logger.Info("book created", map[string]interface{}{"book_id": id, "title": b.Title})
	return b, nil
}

func (s *BookService) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrInvalidBookID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, req.ToBook()); err != nil {
		return nil, err
	}
	return s.repo.FindByIDWithAssociations(ctx, id)
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidBookID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrBookNotFound
	}

	logger.Info("book deleted", map[string]interface{}{"book_id": id})
	return nil
}
