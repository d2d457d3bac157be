package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"library-backend/internal/aggregate"
	"library-backend/internal/domains/author/model"
	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/pkg/database"
	"library-backend/pkg/logger"
)

const (
	findAuthorByID = `SELECT id, first_name, last_name FROM author WHERE id = $1`

	selectAuthorsWithBooks = `
		SELECT a.id AS author_id, a.first_name, a.last_name,
		       b.id AS book_id, b.title, b.release_date
		FROM author a
		LEFT JOIN book b ON a.id = b.author_id`

	findAuthorWithAssociationsByID = selectAuthorsWithBooks + `
		WHERE a.id = $1
		ORDER BY b.id`

	findAllAuthors = selectAuthorsWithBooks + `
		ORDER BY a.id, b.id`

	insertAuthor = `
		INSERT INTO author (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id`

	updateAuthor = `
		UPDATE author
		SET first_name = $1, last_name = $2
		WHERE id = $3`

	deleteAuthor = `DELETE FROM author WHERE id = $1`
)

// authorBooks is the book block of selectAuthorsWithBooks. The author id is
// known from the root, so the block does not project it.
var authorBooks = bookrepo.Columns{ID: "book_id", Title: "title", ReleaseDate: "release_date"}

var authorShape = aggregate.Shape[model.Author]{
	IDField: "author_id",
	Fields:  []string{"first_name", "last_name"},
	Decode: func(id int64, r aggregate.Row) (model.Author, error) {
		a := model.Author{ID: id}
		var err error
		if a.FirstName, err = r.String("first_name"); err != nil {
			return a, err
		}
		a.LastName, err = r.String("last_name")
		return a, err
	},
	ID: func(a model.Author) int64 { return a.ID },
	Slots: []aggregate.Slot[model.Author]{
		aggregate.HasMany("books", bookrepo.Shape(authorBooks),
			func(a model.Author) []bookmodel.Book { return a.Books },
			func(a *model.Author, b []bookmodel.Book) { a.Books = b },
		),
	},
}

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) FindByIDWithoutAssociations(ctx context.Context, id int64) (*model.Author, error) {
	var a model.Author
	err := r.db.QueryRow(ctx, findAuthorByID, id).Scan(&a.ID, &a.FirstName, &a.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		logger.Error("find author", err)
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) FindByIDWithAssociations(ctx context.Context, id int64) (*model.Author, error) {
	authors, err := r.load(ctx, findAuthorWithAssociationsByID, id)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, model.ErrAuthorNotFound
	}
	return &authors[0], nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Author, error) {
	return r.load(ctx, findAllAuthors)
}

// load runs an author/book join and aggregates it, in order of first appearance.
func (r *postgresRepository) load(ctx context.Context, sql string, args ...any) ([]model.Author, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error("query authors", err)
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	g, err := aggregate.Aggregate(aggregate.FromPgx(rows), authorShape)
	if err != nil {
		logger.Error("aggregate author rows", err)
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}

	authors := g.Values()
	for i := range authors {
		authors[i].Books = withAuthor(authors[i].Books, authors[i].ID)
	}
	return authors, nil
}

// withAuthor returns a copy of books attributed to authorID.
func withAuthor(books []bookmodel.Book, authorID int64) []bookmodel.Book {
	out := slices.Clone(books)
	for i := range out {
		id := authorID
		out[i].AuthorID = &id
	}
	return out
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, insertAuthor, a.FirstName, a.LastName).Scan(&id); err != nil {
		logger.Error("insert author", err)
		return 0, fmt.Errorf("failed to create author: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, a *model.Author) error {
	tag, err := r.db.Exec(ctx, updateAuthor, a.FirstName, a.LastName, id)
	if err != nil {
		logger.Error("update author", err)
		return fmt.Errorf("failed to update author %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteAuthor, id)
	if err != nil {
		logger.Error("delete author", err)
		return false, fmt.Errorf("failed to delete author %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
