// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/core/language"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

const resourceName = "Book"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectBook is the hydrating projection shared by list and get.
//
// Author and language come from LEFT JOINs so a dangling reference reads as
// NULL. Genres are aggregated in junction order. The available count is a
// live sub-select; it is never stored.
var selectBook = fmt.Sprintf(`
	SELECT
		b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		a.%s, a.%s, a.%s,
		l.%s, l.%s,
		COALESCE((
			SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s, 'slug', g.%s) ORDER BY bg.%s)
			FROM %s bg
			JOIN %s g ON g.%s = bg.%s
			WHERE bg.%s = b.%s
		), '[]') AS genres,
		(
			SELECT count(*)
			FROM %s bi
			WHERE bi.%s = b.%s AND bi.%s = '%s'
		) AS available_count,
		COUNT(*) OVER() AS total_count
	FROM %s b
	LEFT JOIN %s a ON a.%s = b.%s
	LEFT JOIN %s l ON l.%s = b.%s
	WHERE TRUE`,
	schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Summary, schema.CatalogBook.ISBN,
	schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
	schema.CatalogLanguage.ID, schema.CatalogLanguage.Name,
	schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogBookGenre.Position,
	schema.CatalogBookGenre.Table,
	schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogBookGenre.GenreID,
	schema.CatalogBookGenre.BookID, schema.CatalogBook.ID,
	schema.CatalogBookInstance.Table,
	schema.CatalogBookInstance.BookID, schema.CatalogBook.ID, schema.CatalogBookInstance.Status, status.Available,
	schema.CatalogBook.Table,
	schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogBook.AuthorID,
	schema.CatalogLanguage.Table, schema.CatalogLanguage.ID, schema.CatalogBook.LanguageID,
)

// scanBook maps one row of [selectBook] and returns the window total.
func scanBook(row pgx.Row) (*Book, int, error) {
	var (
		b            = &Book{}
		authorID     *int
		firstName    *string
		lastName     *string
		languageID   *int
		languageName *string
		genresJSON   []byte
		total        int
	)

	err := row.Scan(
		&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.CreatedAt, &b.UpdatedAt,
		&authorID, &firstName, &lastName,
		&languageID, &languageName,
		&genresJSON,
		&b.AvailableCount,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}

	if authorID != nil {
		b.Author = &AuthorSummary{ID: *authorID, FirstName: *firstName, LastName: *lastName}
	}
	if languageID != nil {
		b.Language = &language.Language{ID: *languageID, Name: *languageName}
	}
	if err := json.Unmarshal(genresJSON, &b.Genres); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
	}

	return b, total, nil
}

/*
ListBooks returns a filtered page of books ordered by title and the total
number of matches.

The total comes from a COUNT(*) OVER() window, so an out-of-range page
reports a total of zero.
*/
func (repository *PostgresRepository) ListBooks(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(selectBook)

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s ILIKE $%d", schema.CatalogBook.Title, argID))
		args = append(args, postgres.Contains(filter.Query))
		argID++
	}

	if filter.AuthorID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CatalogBook.AuthorID, argID))
		args = append(args, *filter.AuthorID)
		argID++
	}

	if filter.LanguageID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CatalogBook.LanguageID, argID))
		args = append(args, *filter.LanguageID)
		argID++
	}

	if filter.GenreID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM %s x WHERE x.%s = b.%s AND x.%s = $%d)",
			schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID, schema.CatalogBook.ID,
			schema.CatalogBookGenre.GenreID, argID))
		args = append(args, *filter.GenreID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY b.%s ASC, b.%s ASC", schema.CatalogBook.Title, schema.CatalogBook.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	totalCount := 0
	for rows.Next() {
		b, total, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		totalCount = total
		books = append(books, b)
	}

	return books, totalCount, dberr.Wrap(rows.Err(), "list_books")
}

// GetBook returns one hydrated book.
func (repository *PostgresRepository) GetBook(ctx context.Context, id int) (*Book, error) {
	query := selectBook + fmt.Sprintf(" AND b.%s = $1", schema.CatalogBook.ID)

	b, _, err := scanBook(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, resourceName, "get_book")
	}
	return b, nil
}

/*
CreateBook inserts the book and its genre links in one transaction.

Unknown author, language or genre ids fail the foreign keys and surface as
422 through [dberr.Wrap].
*/
func (repository *PostgresRepository) CreateBook(ctx context.Context, in *Input) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.AuthorID, schema.CatalogBook.LanguageID,
		schema.CatalogBook.Summary, schema.CatalogBook.ISBN,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID,
	)

	var id int
	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, in.Title, in.AuthorID, in.LanguageID, in.Summary, in.ISBN).Scan(&id); err != nil {
			return err
		}
		return replaceGenres(ctx, tx, id, in.GenreIDs)
	})
	if err != nil {
		return 0, dberr.Wrap(err, "create_book")
	}
	return id, nil
}

// UpdateBook replaces every writable field, genre links included, atomically.
func (repository *PostgresRepository) UpdateBook(ctx context.Context, id int, in *Input) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.Title, schema.CatalogBook.AuthorID, schema.CatalogBook.LanguageID,
		schema.CatalogBook.Summary, schema.CatalogBook.ISBN, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID,
	)

	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, query, id, in.Title, in.AuthorID, in.LanguageID, in.Summary, in.ISBN)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return apperr.NotFound(resourceName)
		}
		return replaceGenres(ctx, tx, id, in.GenreIDs)
	})
	return dberr.Wrap(err, "update_book")
}

// DeleteBook removes the book and its genre links. Its copies keep existing
// with no book.
func (repository *PostgresRepository) DeleteBook(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	cmd, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

// CountAvailable counts status "a" copies of an existing book.
func (repository *PostgresRepository) CountAvailable(ctx context.Context, id int) (int, error) {
	query := fmt.Sprintf(`
		SELECT (
			SELECT count(*) FROM %s bi WHERE bi.%s = b.%s AND bi.%s = $2
		)
		FROM %s b
		WHERE b.%s = $1
	`,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.BookID, schema.CatalogBook.ID,
		schema.CatalogBookInstance.Status,
		schema.CatalogBook.Table, schema.CatalogBook.ID,
	)

	var count int
	if err := repository.pool.QueryRow(ctx, query, id, string(status.Available)).Scan(&count); err != nil {
		return 0, dberr.NotFound(err, resourceName, "count_available")
	}
	return count, nil
}

/*
replaceGenres rewrites the book's genre links.

Existing links are deleted, then the new ones are queued on a pgx.Batch with
their slice index as position, which is what keeps [Book.DisplayGenre]
deterministic.
*/
func replaceGenres(ctx context.Context, tx pgx.Tx, bookID int, genreIDs []int) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID)
	if _, err := tx.Exec(ctx, deleteQuery, bookID); err != nil {
		return fmt.Errorf("postgres: failed to clear genres: %w", err)
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.CatalogBookGenre.Table,
		schema.CatalogBookGenre.BookID, schema.CatalogBookGenre.GenreID, schema.CatalogBookGenre.Position,
	)

	batch := &pgx.Batch{}
	for position, genreID := range genreIDs {
		batch.Queue(insertQuery, bookID, genreID, position)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to link genres: %w", err)
	}
	return nil
}
