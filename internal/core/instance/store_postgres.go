// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package instance

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

const resourceName = "BookInstance"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectInstance = fmt.Sprintf(`
	SELECT
		i.%s, b.%s, b.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s,
		COUNT(*) OVER() AS total_count
	FROM %s i
	LEFT JOIN %s b ON b.%s = i.%s
	WHERE TRUE`,
	schema.CatalogBookInstance.ID, schema.CatalogBook.ID, schema.CatalogBook.Title,
	schema.CatalogBookInstance.Imprint, schema.CatalogBookInstance.DueBack, schema.CatalogBookInstance.BorrowerID,
	schema.CatalogBookInstance.Status, schema.CatalogBookInstance.CreatedAt, schema.CatalogBookInstance.UpdatedAt,
	schema.CatalogBookInstance.Table,
	schema.CatalogBook.Table, schema.CatalogBook.ID, schema.CatalogBookInstance.BookID,
)

func scanInstance(row pgx.Row) (*Instance, int, error) {
	var (
		i         = &Instance{}
		bookID    *int
		bookTitle *string
		code      string
		total     int
	)

	err := row.Scan(
		&i.ID, &bookID, &bookTitle, &i.Imprint, &i.DueBack, &i.BorrowerID,
		&code, &i.CreatedAt, &i.UpdatedAt, &total,
	)
	if err != nil {
		return nil, 0, err
	}

	i.Status = status.Status(code)
	if bookID != nil {
		i.Book = &BookRef{ID: *bookID, Title: *bookTitle}
	}
	return i, total, nil
}

// ListInstances returns a page of copies ordered by due date, undated last.
func (repository *PostgresRepository) ListInstances(ctx context.Context, filter Filter, limit, offset int) ([]*Instance, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(selectInstance)

	if filter.BookID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND i.%s = $%d", schema.CatalogBookInstance.BookID, argID))
		args = append(args, *filter.BookID)
		argID++
	}

	if len(filter.Statuses) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND i.%s = ANY($%d)", schema.CatalogBookInstance.Status, argID))
		args = append(args, slice.Map(filter.Statuses, func(s status.Status) string { return string(s) }))
		argID++
	}

	if filter.BorrowerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND i.%s = $%d", schema.CatalogBookInstance.BorrowerID, argID))
		args = append(args, filter.BorrowerID)
		argID++
	}

	if filter.DueBefore != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND i.%s < $%d", schema.CatalogBookInstance.DueBack, argID))
		args = append(args, *filter.DueBefore)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY i.%s ASC NULLS LAST, i.%s ASC",
		schema.CatalogBookInstance.DueBack, schema.CatalogBookInstance.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_instances")
	}
	defer rows.Close()

	instances := make([]*Instance, 0)
	totalCount := 0
	for rows.Next() {
		i, total, err := scanInstance(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_instance")
		}
		totalCount = total
		instances = append(instances, i)
	}

	return instances, totalCount, dberr.Wrap(rows.Err(), "list_instances")
}

func (repository *PostgresRepository) GetInstance(ctx context.Context, id string) (*Instance, error) {
	query := selectInstance + fmt.Sprintf(" AND i.%s = $1", schema.CatalogBookInstance.ID)

	i, _, err := scanInstance(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, resourceName, "get_instance")
	}
	return i, nil
}

func (repository *PostgresRepository) CreateInstance(ctx context.Context, id string, in *Input) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`,
		schema.CatalogBookInstance.Table,
		schema.CatalogBookInstance.ID, schema.CatalogBookInstance.BookID, schema.CatalogBookInstance.Imprint,
		schema.CatalogBookInstance.DueBack, schema.CatalogBookInstance.BorrowerID, schema.CatalogBookInstance.Status,
		schema.CatalogBookInstance.CreatedAt, schema.CatalogBookInstance.UpdatedAt,
	)

	_, err := repository.pool.Exec(ctx, query, id, in.BookID, in.Imprint, in.DueBack, in.BorrowerID, string(in.Status))
	return dberr.Wrap(err, "create_instance")
}

func (repository *PostgresRepository) UpdateInstance(ctx context.Context, id string, in *Input) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
	`,
		schema.CatalogBookInstance.Table,
		schema.CatalogBookInstance.BookID, schema.CatalogBookInstance.Imprint, schema.CatalogBookInstance.DueBack,
		schema.CatalogBookInstance.BorrowerID, schema.CatalogBookInstance.Status, schema.CatalogBookInstance.UpdatedAt,
		schema.CatalogBookInstance.ID,
	)

	return repository.exec(ctx, "update_instance", query, id, in.BookID, in.Imprint, in.DueBack, in.BorrowerID, string(in.Status))
}

func (repository *PostgresRepository) DeleteInstance(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBookInstance.Table, schema.CatalogBookInstance.ID)
	return repository.exec(ctx, "delete_instance", query, id)
}

func (repository *PostgresRepository) SetDueBack(ctx context.Context, id string, due date.Date) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CatalogBookInstance.Table,
		schema.CatalogBookInstance.DueBack, schema.CatalogBookInstance.UpdatedAt,
		schema.CatalogBookInstance.ID,
	)
	return repository.exec(ctx, "set_due_back", query, id, due)
}

func (repository *PostgresRepository) MarkReturned(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NULL, %s = NULL, %s = NOW() WHERE %s = $1`,
		schema.CatalogBookInstance.Table,
		schema.CatalogBookInstance.Status, schema.CatalogBookInstance.BorrowerID,
		schema.CatalogBookInstance.DueBack, schema.CatalogBookInstance.UpdatedAt,
		schema.CatalogBookInstance.ID,
	)
	return repository.exec(ctx, "mark_returned", query, id, string(status.Available))
}

// exec runs a single-row write and reports a missing row as NotFound.
func (repository *PostgresRepository) exec(ctx context.Context, action, query string, args ...any) error {
	cmd, err := repository.pool.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}
