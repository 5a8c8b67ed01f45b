// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

const resourceName = "Language"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListLanguages(ctx context.Context) ([]*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC;
	`,
		schema.CatalogLanguage.ID,
		schema.CatalogLanguage.Name,
		schema.CatalogLanguage.Table,
		schema.CatalogLanguage.Name,
		schema.CatalogLanguage.ID,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}
	defer rows.Close()

	langs := make([]*Language, 0)
	for rows.Next() {
		l := &Language{}
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_language")
		}
		langs = append(langs, l)
	}

	return langs, dberr.Wrap(rows.Err(), "list_languages")
}

func (repository *PostgresRepository) GetLanguage(ctx context.Context, id int) (*Language, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogLanguage.ID,
		schema.CatalogLanguage.Name,
		schema.CatalogLanguage.Table,
		schema.CatalogLanguage.ID,
	)

	l := &Language{}
	if err := repository.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.Name); err != nil {
		return nil, dberr.NotFound(err, resourceName, "get_language")
	}
	return l, nil
}

func (repository *PostgresRepository) CreateLanguage(ctx context.Context, l *Language) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CatalogLanguage.Table,
		schema.CatalogLanguage.Name,
		schema.CatalogLanguage.ID,
	)

	err := repository.db.QueryRow(ctx, query, l.Name).Scan(&l.ID)
	return dberr.Wrap(err, "create_language")
}

func (repository *PostgresRepository) UpdateLanguage(ctx context.Context, l *Language) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CatalogLanguage.Table,
		schema.CatalogLanguage.Name,
		schema.CatalogLanguage.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, l.ID, l.Name)
	if err != nil {
		return dberr.Wrap(err, "update_language")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

// DeleteLanguage removes the language. Books written in it keep existing
// with no language (ON DELETE SET NULL).
func (repository *PostgresRepository) DeleteLanguage(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogLanguage.Table,
		schema.CatalogLanguage.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_language")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}
