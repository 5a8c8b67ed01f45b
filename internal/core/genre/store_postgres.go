// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

const resourceName = "Genre"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectGenre = fmt.Sprintf(`SELECT %s, %s, %s FROM %s`,
	schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.Table)

func scanGenre(row pgx.Row) (*Genre, error) {
	g := &Genre{}
	if err := row.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
		return nil, err
	}
	return g, nil
}

func (repository *PostgresRepository) ListGenres(ctx context.Context) ([]*Genre, error) {
	query := selectGenre + fmt.Sprintf(` ORDER BY %s ASC`, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, dberr.Wrap(rows.Err(), "list_genres")
}

func (repository *PostgresRepository) GetGenre(ctx context.Context, id int) (*Genre, error) {
	query := selectGenre + fmt.Sprintf(` WHERE %s = $1`, schema.CatalogGenre.ID)

	g, err := scanGenre(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, resourceName, "get_genre")
	}
	return g, nil
}

func (repository *PostgresRepository) GetGenreBySlug(ctx context.Context, slug string) (*Genre, error) {
	query := selectGenre + fmt.Sprintf(` WHERE %s = $1`, schema.CatalogGenre.Slug)

	g, err := scanGenre(repository.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.NotFound(err, resourceName, "get_genre_by_slug")
	}
	return g, nil
}

func (repository *PostgresRepository) CreateGenre(ctx context.Context, g *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.ID)

	err := repository.db.QueryRow(ctx, query, g.Name, g.Slug).Scan(&g.ID)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) UpdateGenre(ctx context.Context, g *Genre) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.ID)

	cmd, err := repository.db.Exec(ctx, query, g.ID, g.Name, g.Slug)
	if err != nil {
		return dberr.Wrap(err, "update_genre")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

// DeleteGenre removes the genre and, through the junction's cascade, its
// links to books. The books themselves are untouched.
func (repository *PostgresRepository) DeleteGenre(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}
