// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var selectUser = fmt.Sprintf(
	"SELECT %s FROM %s",
	strings.Join(schema.UserAccount.Columns(), ", "),
	schema.UserAccount.Table,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DisplayName,
		&role, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = sec.UserRole(role)
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := selectUser + fmt.Sprintf(" WHERE %s = $1", schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, resourceName, "find_user_by_id")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	query := selectUser + fmt.Sprintf(" WHERE lower(%s) = lower($1) OR lower(%s) = lower($1) LIMIT 1",
		schema.UserAccount.Username, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, login))
	if err != nil {
		return nil, dberr.NotFound(err, resourceName, "find_user_by_login")
	}
	return user, nil
}

func (repository *PostgresUserRepository) Exists(ctx context.Context, username, email string) (bool, bool, error) {
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %[1]s WHERE lower(%[2]s) = lower($1)),
			EXISTS (SELECT 1 FROM %[1]s WHERE lower(%[3]s) = lower($2))
	`, schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.Email)

	var usernameTaken, emailTaken bool
	if err := repository.pool.QueryRow(ctx, query, username, email).Scan(&usernameTaken, &emailTaken); err != nil {
		return false, false, dberr.Wrap(err, "user_exists")
	}
	return usernameTaken, emailTaken, nil
}

func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.DisplayName, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName, string(user.Role),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresUserRepository) TouchLastLogin(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1",
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID)

	_, err := repository.pool.Exec(ctx, query, id)
	return dberr.Wrap(err, "touch_last_login")
}

// Delete removes the account. Copies it borrowed keep existing with no
// borrower.
func (repository *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.UserAccount.Table, schema.UserAccount.ID)

	cmd, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}
