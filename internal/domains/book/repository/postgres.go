package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"library-backend/internal/aggregate"
	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"
	"library-backend/pkg/logger"
)

const (
	findBookWithAssociationsByID = `
		SELECT b.id AS book_id,
		       b.author_id AS book_author_id,
		       b.title AS book_title,
		       b.release_date AS book_release_date,
		       l.id AS library_id,
		       l.name AS library_name
		FROM book b
		LEFT JOIN library_book lb ON b.id = lb.book_id
		LEFT JOIN library l ON lb.library_id = l.id
		WHERE b.id = $1
		ORDER BY l.id`

	selectAllBooks = `
		SELECT id, author_id, title, release_date
		FROM book
		ORDER BY id`

	insertBook = `
		INSERT INTO book (title, author_id, release_date)
		VALUES ($1, $2, $3)
		RETURNING id`

	updateBook = `
		UPDATE book SET title = $1, author_id = $2, release_date = $3
		WHERE id = $4`

	deleteBook = `DELETE FROM book WHERE id = $1`
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a book repository over db.
func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

var bookWithLibraries = Shape(JoinedColumns, LibrariesSlot(LibraryRefShape("library_id", "library_name")))

func (r *postgresRepository) FindByIDWithAssociations(ctx context.Context, id int64) (*model.Book, error) {
	rows, err := r.db.Query(ctx, findBookWithAssociationsByID, id)
	if err != nil {
		logger.Error("find book with associations", err)
		return nil, fmt.Errorf("failed to query book %d: %w", id, err)
	}
	defer rows.Close()

	b, ok, err := aggregate.First(aggregate.FromPgx(rows), bookWithLibraries)
	if err != nil {
		logger.Error("aggregate book rows", err)
		return nil, fmt.Errorf("failed to load book %d: %w", id, err)
	}
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, selectAllBooks)
	if err != nil {
		logger.Error("find all books", err)
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	g, err := aggregate.Aggregate(aggregate.FromPgx(rows), Shape(TableColumns))
	if err != nil {
		logger.Error("aggregate book rows", err)
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	return g.Values(), nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, insertBook, b.Title, b.AuthorID, b.ReleaseDate).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, model.ErrAuthorNotFound
		}
		logger.Error("insert book", err)
		return 0, fmt.Errorf("failed to create book: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, b *model.Book) error {
	tag, err := r.db.Exec(ctx, updateBook, b.Title, b.AuthorID, b.ReleaseDate, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrAuthorNotFound
		}
		logger.Error("update book", err)
		return fmt.Errorf("failed to update book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteBook, id)
	if err != nil {
		logger.Error("delete book", err)
		return false, fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
