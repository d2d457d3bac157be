package service

import (
	"context"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/repository"
	"library-backend/pkg/logger"
)

type LibraryService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &LibraryService{repo: repo}
}

func (s *LibraryService) GetLibrary(ctx context.Context, id int64) (*model.Library, error) {
	if id <= 0 {
		return nil, model.ErrInvalidLibraryID
	}
	return s.repo.FindByID(ctx, id)
}

func (s *LibraryService) GetLibraryHoldings(ctx context.Context, id int64) (*model.Library, error) {
	if id <= 0 {
		return nil, model.ErrInvalidLibraryID
	}
	return s.repo.FindByIDWithHoldings(ctx, id)
}

func (s *LibraryService) ListLibraries(ctx context.Context) ([]model.Library, error) {
	return s.repo.FindAll(ctx)
}

func (s *LibraryService) CreateLibrary(ctx context.Context, req model.CreateLibraryRequest) (*model.Library, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := req.ToLibrary()
	id, err := s.repo.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	l.ID = id
	if l.Info != nil {
		l.Info.ID = id
	}
	l.Books = []bookmodel.Book{}

	logger.Info("library created", map[string]interface{}{"library_id": id, "name": l.Name})
	return l, nil
}

func (s *LibraryService) UpdateLibrary(ctx context.Context, id int64, req model.UpdateLibraryRequest) (*model.Library, error) {
	if id <= 0 {
		return nil, model.ErrInvalidLibraryID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, req.ToLibrary()); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *LibraryService) DeleteLibrary(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidLibraryID
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrLibraryNotFound
	}

	logger.Info("library deleted", map[string]interface{}{"library_id": id})
	return nil
}

// AddBook records the holding and returns the library as it now stands.
func (s *LibraryService) AddBook(ctx context.Context, libraryID, bookID int64) (*model.Library, error) {
	if err := validateHolding(libraryID, bookID); err != nil {
		return nil, err
	}
	if err := s.repo.AddBook(ctx, libraryID, bookID); err != nil {
		return nil, err
	}

	logger.Debug("book added to library", map[string]interface{}{"library_id": libraryID, "book_id": bookID})
	return s.repo.FindByID(ctx, libraryID)
}

func (s *LibraryService) RemoveBook(ctx context.Context, libraryID, bookID int64) error {
	if err := validateHolding(libraryID, bookID); err != nil {
		return err
	}
	removed, err := s.repo.RemoveBook(ctx, libraryID, bookID)
	if err != nil {
		return err
	}
	if !removed {
		return model.ErrHoldingNotFound
	}

	logger.Debug("book removed from library", map[string]interface{}{"library_id": libraryID, "book_id": bookID})
	return nil
}

func validateHolding(libraryID, bookID int64) error {
	if libraryID <= 0 {
		return model.ErrInvalidLibraryID
	}
	if bookID <= 0 {
		return model.ErrInvalidBookID
	}
	return nil
}
