package service

import (
	"context"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/pkg/logger"
)

type AuthorService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) GetAuthor(ctx context.Context, id int64, withBooks bool) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrInvalidAuthorID
	}
	if withBooks {
		return s.repo.FindByIDWithAssociations(ctx, id)
	}
	return s.repo.FindByIDWithoutAssociations(ctx, id)
}

func (s *AuthorService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.repo.FindAll(ctx)
}

func (s *AuthorService) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := req.ToAuthor()
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	a.Books = []bookmodel.Book{}

	logger.Info("author created", map[string]interface{}{"author_id": id, "name": a.FullName()})
	return a, nil
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrInvalidAuthorID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, req.ToAuthor()); err != nil {
		return nil, err
	}
	return s.repo.FindByIDWithAssociations(ctx, id)
}

// DeleteAuthor removes the author. Their books stay, with no author.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidAuthorID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrAuthorNotFound
	}

	logger.Info("author deleted", map[string]interface{}{"author_id": id})
	return nil
}
