package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"library-backend/internal/aggregate"
	"library-backend/internal/domains/library/model"
	"library-backend/pkg/database"
	"library-backend/pkg/logger"
)

const DefaultPageSize = 500

const (
	selectLibraries = `
		SELECT l.id AS library_id, l.name AS library_name,
		       li.id AS library_info_id, li.address AS library_address, li.phone AS library_phone,
		       b.id AS book_id, b.author_id AS book_author_id, b.title AS book_title, b.release_date AS book_release_date
		FROM library l
		LEFT JOIN library_info li ON l.id = li.id
		LEFT JOIN library_book lb ON l.id = lb.library_id
		LEFT JOIN book b ON lb.book_id = b.id`

	findLibraryByID = selectLibraries + `
		WHERE l.id = $1
		ORDER BY b.id`

	findLibrariesPage = selectLibraries + `
		ORDER BY l.id, b.id
		LIMIT $1 OFFSET $2`

	findLibraryWithHoldingsByID = `
		SELECT l.id AS library_id, l.name AS library_name,
		       li.id AS library_info_id, li.address AS library_address, li.phone AS library_phone,
		       b.id AS book_id, b.author_id AS book_author_id, b.title AS book_title, b.release_date AS book_release_date,
		       h.id AS holder_id, h.name AS holder_name
		FROM library l
		LEFT JOIN library_info li ON l.id = li.id
		LEFT JOIN library_book lb ON l.id = lb.library_id
		LEFT JOIN book b ON lb.book_id = b.id
		LEFT JOIN library_book hb ON b.id = hb.book_id
		LEFT JOIN library h ON hb.library_id = h.id
		WHERE l.id = $1
		ORDER BY b.id, h.id`

	insertLibrary = `INSERT INTO library (name) VALUES ($1) RETURNING id`

	upsertLibraryInfo = `
		INSERT INTO library_info (id, address, phone) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET address = EXCLUDED.address, phone = EXCLUDED.phone`

	updateLibrary = `UPDATE library SET name = $1 WHERE id = $2`

	deleteLibraryInfo     = `DELETE FROM library_info WHERE id = $1`
	deleteLibraryHoldings = `DELETE FROM library_book WHERE library_id = $1`
	deleteLibrary         = `DELETE FROM library WHERE id = $1`

	insertHolding = `
		INSERT INTO library_book (library_id, book_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	deleteHolding = `DELETE FROM library_book WHERE library_id = $1 AND book_id = $2`
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type postgresRepository struct {
	db       database.Pool
	pageSize int
}

// NewPostgresRepository creates a library repository over db. FindAll reads
// the join pageSize rows at a time; non-positive sizes use DefaultPageSize.
func NewPostgresRepository(db database.Pool, pageSize int) RepositoryInterface {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &postgresRepository{db: db, pageSize: pageSize}
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Library, error) {
	return r.findOne(ctx, findLibraryByID, libraryWithBooks, id)
}

func (r *postgresRepository) FindByIDWithHoldings(ctx context.Context, id int64) (*model.Library, error) {
	return r.findOne(ctx, findLibraryWithHoldingsByID, libraryWithHoldings, id)
}

func (r *postgresRepository) findOne(ctx context.Context, sql string, shape aggregate.Shape[model.Library], id int64) (*model.Library, error) {
	rows, err := r.db.Query(ctx, sql, id)
	if err != nil {
		logger.Error("find library", err)
		return nil, fmt.Errorf("failed to query library %d: %w", id, err)
	}
	defer rows.Close()

	l, ok, err := aggregate.First(aggregate.FromPgx(rows), shape)
	if err != nil {
		logger.Error("aggregate library rows", err)
		return nil, fmt.Errorf("failed to load library %d: %w", id, err)
	}
	if !ok {
		return nil, model.ErrLibraryNotFound
	}
	return &l, nil
}

// FindAll pages through the ordered join. A library whose rows straddle two
// pages comes back as two fragments, which the graph merge joins again.
func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Library, error) {
	var all *aggregate.Graph[model.Library]
	for offset := 0; ; offset += r.pageSize {
		page, n, err := r.page(ctx, offset)
		if err != nil {
			logger.Error("aggregate library page", err)
			return nil, fmt.Errorf("failed to load libraries at offset %d: %w", offset, err)
		}

		if all == nil {
			all = page
		} else if all, err = all.Merge(libraryWithBooks, page); err != nil {
			logger.Error("merge library pages", err)
			return nil, fmt.Errorf("failed to merge libraries at offset %d: %w", offset, err)
		}

		if n < r.pageSize {
			break
		}
	}

	logger.Debug("libraries loaded", map[string]interface{}{"count": all.Len(), "page_size": r.pageSize})
	return all.Values(), nil
}

func (r *postgresRepository) page(ctx context.Context, offset int) (*aggregate.Graph[model.Library], int, error) {
	rows, err := r.db.Query(ctx, findLibrariesPage, r.pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	src := &countingSource{Source: aggregate.FromPgx(rows)}
	g, err := aggregate.Aggregate(src, libraryWithBooks)
	if err != nil {
		return nil, 0, err
	}
	return g, src.n, nil
}

func (r *postgresRepository) Create(ctx context.Context, l *model.Library) (int64, error) {
	id, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (int64, error) {
		var id int64
		if err := tx.QueryRow(ctx, insertLibrary, l.Name).Scan(&id); err != nil {
			return 0, err
		}
		if l.Info != nil {
			if _, err := tx.Exec(ctx, upsertLibraryInfo, id, l.Info.Address, l.Info.Phone); err != nil {
				return 0, err
			}
		}
		return id, nil
	})
	if err != nil {
		logger.Error("insert library", err)
		return 0, fmt.Errorf("failed to create library: %w", err)
	}
	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, l *model.Library) error {
	err := database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateLibrary, l.Name, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrLibraryNotFound
		}
		if l.Info != nil {
			if _, err := tx.Exec(ctx, upsertLibraryInfo, id, l.Info.Address, l.Info.Phone); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrLibraryNotFound) {
			return err
		}
		logger.Error("update library", err)
		return fmt.Errorf("failed to update library %d: %w", id, err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (bool, error) {
		if _, err := tx.Exec(ctx, deleteLibraryInfo, id); err != nil {
			return false, err
		}
		if _, err := tx.Exec(ctx, deleteLibraryHoldings, id); err != nil {
			return false, err
		}
		tag, err := tx.Exec(ctx, deleteLibrary, id)
		if err != nil {
			return false, err
		}
		return tag.RowsAffected() > 0, nil
	})
	if err != nil {
		logger.Error("delete library", err)
		return false, fmt.Errorf("failed to delete library %d: %w", id, err)
	}
	return deleted, nil
}

func (r *postgresRepository) AddBook(ctx context.Context, libraryID, bookID int64) error {
	if _, err := r.db.Exec(ctx, insertHolding, libraryID, bookID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if strings.Contains(pgErr.ConstraintName, "book_id") {
				return model.ErrBookNotFound
			}
			return model.ErrLibraryNotFound
		}
		logger.Error("insert holding", err)
		return fmt.Errorf("failed to add book %d to library %d: %w", bookID, libraryID, err)
	}
	return nil
}

func (r *postgresRepository) RemoveBook(ctx context.Context, libraryID, bookID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteHolding, libraryID, bookID)
	if err != nil {
		logger.Error("delete holding", err)
		return false, fmt.Errorf("failed to remove book %d from library %d: %w", bookID, libraryID, err)
	}
	return tag.RowsAffected() > 0, nil
}
