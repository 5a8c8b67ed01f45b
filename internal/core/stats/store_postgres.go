// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Counts reads every counter in one round trip. Available copies are counted
// through their book, so copies of a deleted book are left out.
func (repository *PostgresRepository) Counts(ctx context.Context) (*Summary, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT count(*) FROM %s),
			(SELECT count(*) FROM %s),
			(SELECT count(*) FROM %s WHERE %s = $1 AND %s IS NOT NULL),
			(SELECT count(*) FROM %s),
			(SELECT count(*) FROM %s)
	`,
		schema.CatalogBook.Table,
		schema.CatalogBookInstance.Table,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.Status, schema.CatalogBookInstance.BookID,
		schema.CatalogAuthor.Table,
		schema.CatalogGenre.Table,
	)

	summary := &Summary{}
	err := repository.pool.QueryRow(ctx, query, string(status.Available)).Scan(
		&summary.NumBooks,
		&summary.NumInstances,
		&summary.NumInstancesAvailable,
		&summary.NumAuthors,
		&summary.NumGenres,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "count_catalog")
	}
	return summary, nil
}
