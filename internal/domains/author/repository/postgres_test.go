package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/aggregate"
	"library-backend/internal/domains/author/model"
)

var authorColumns = []string{"author_id", "first_name", "last_name", "book_id", "title", "release_date"}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, RepositoryInterface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func TestFindByIDWithoutAssociations(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT id, first_name, last_name FROM author").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name"}).
			AddRow(int64(1), "Frank", "Herbert"))

	a, err := repo.FindByIDWithoutAssociations(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", a.FullName())
	assert.Nil(t, a.Books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDWithoutAssociations_NotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT id, first_name, last_name FROM author").WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByIDWithoutAssociations(context.Background(), 9)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestFindByIDWithAssociations(t *testing.T) {
	mock, repo := newMock(t)
	released := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM author a").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(authorColumns).
			AddRow(int64(1), "Frank", "Herbert", int64(3), "Dune", released).
			AddRow(int64(1), "Frank", "Herbert", int64(4), "Dune Messiah", nil).
			AddRow(int64(1), "Frank", "Herbert", int64(3), "Dune", released))

	a, err := repo.FindByIDWithAssociations(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	require.Len(t, a.Books, 2)
	assert.Equal(t, "Dune", a.Books[0].Title)
	assert.Equal(t, "Dune Messiah", a.Books[1].Title)
	assert.Nil(t, a.Books[1].ReleaseDate)
	for _, b := range a.Books {
		require.NotNil(t, b.AuthorID)
		assert.Equal(t, int64(1), *b.AuthorID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDWithAssociations_NoBooks(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("FROM author a").WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(authorColumns).
			AddRow(int64(2), "Jane", "Austen", nil, nil, nil))

	a, err := repo.FindByIDWithAssociations(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, a.Books)
	assert.Empty(t, a.Books)
}

func TestFindByIDWithAssociations_NotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("FROM author a").WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(authorColumns))

	_, err := repo.FindByIDWithAssociations(context.Background(), 3)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestFindByIDWithAssociations_DecodeError(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("FROM author a").WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(authorColumns).
			AddRow(int64(4), 42, "Austen", nil, nil, nil))

	_, err := repo.FindByIDWithAssociations(context.Background(), 4)
	assert.ErrorIs(t, err, aggregate.ErrDecode)
	assert.NotErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestFindAll(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("ORDER BY a.id, b.id").
		WillReturnRows(pgxmock.NewRows(authorColumns).
			AddRow(int64(1), "Frank", "Herbert", int64(3), "Dune", nil).
			AddRow(int64(2), "Jane", "Austen", nil, nil, nil).
			AddRow(int64(1), "Frank", "Herbert", int64(4), "Children of Dune", nil))

	authors, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, int64(1), authors[0].ID)
	assert.Len(t, authors[0].Books, 2)
	assert.Equal(t, int64(2), authors[1].ID)
	assert.Empty(t, authors[1].Books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll_QueryError(t *testing.T) {
	mock, repo := newMock(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("FROM author a").WillReturnError(boom)

	_, err := repo.FindAll(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCreate(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("INSERT INTO author").WithArgs("Ursula", "Le Guin").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.Create(context.Background(), &model.Author{FirstName: "Ursula", LastName: "Le Guin"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestUpdate(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec("UPDATE author").WithArgs("Ursula", "K. Le Guin", int64(11)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(context.Background(), 11, &model.Author{FirstName: "Ursula", LastName: "K. Le Guin"})
		assert.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectExec("UPDATE author").WithArgs("A", "B", int64(12)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(context.Background(), 12, &model.Author{FirstName: "A", LastName: "B"})
		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
	})
}

func TestDelete(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec("DELETE FROM author").WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM author").WithArgs(int64(6)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 6)
	require.NoError(t, err)
	assert.False(t, deleted)
}
