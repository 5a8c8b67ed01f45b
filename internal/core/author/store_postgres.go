// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

const resourceName = "Author"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	authorColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	// Byte-wise collation keeps the order independent of the server locale.
	authorOrder = fmt.Sprintf(`%s COLLATE "C" ASC, %s COLLATE "C" ASC, %s ASC`,
		schema.CatalogAuthor.LastName, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.ID,
	)
)

func scanAuthor(row pgx.Row) (*Author, error) {
	a := &Author{}
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (repository *PostgresRepository) ListAuthors(ctx context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE TRUE`, authorColumns, schema.CatalogAuthor.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, schema.CatalogAuthor.Table)

	args := []any{}

	if f.Query != "" {
		condition := fmt.Sprintf(` AND (%s ILIKE $1 OR %s ILIKE $1)`, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName)
		query += condition
		countQuery += condition
		args = append(args, postgres.Contains(f.Query))
	}

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	query += " ORDER BY " + authorOrder + " LIMIT $" + itos(len(args)+1) + " OFFSET $" + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := make([]*Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) GetAuthor(ctx context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, authorColumns, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	a, err := scanAuthor(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, resourceName, "get_author")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(ctx context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(ctx context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.ID,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, a.ID, a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.NotFound(err, resourceName, "update_author")
}

// DeleteAuthor removes the author. Their books keep existing with no author.
func (repository *PostgresRepository) DeleteAuthor(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
