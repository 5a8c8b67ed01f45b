// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres/pgtest"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

func insertGenre(t *testing.T, pool *pgxpool.Pool, name, slug string) int {
	t.Helper()
	var id int
	require.NoError(t, pool.QueryRow(context.Background(),
		`INSERT INTO catalog.genre (name, slug) VALUES ($1, $2) RETURNING id`, name, slug,
	).Scan(&id))
	return id
}

func insertCopy(t *testing.T, pool *pgxpool.Pool, bookID int, status string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO catalog.bookinstance (id, bookid, imprint, status) VALUES (gen_random_uuid(), $1, 'First', $2)`,
		bookID, status,
	)
	require.NoError(t, err)
}

/*
TestPostgresRepository_GenreOrderAndAvailability checks hydration.
*/
func TestPostgresRepository_GenreOrderAndAvailability(t *testing.T) {
	pool := pgtest.Open(t)
	repo := book.NewPostgresRepository(pool)
	ctx := context.Background()

	poetry := insertGenre(t, pool, "Poetry", "poetry")
	fantasy := insertGenre(t, pool, "Fantasy", "fantasy")
	horror := insertGenre(t, pool, "Horror", "horror")
	drama := insertGenre(t, pool, "Drama", "drama")

	id, err := repo.CreateBook(ctx, &book.Input{
		Title:    "Dune",
		ISBN:     "9780441013593",
		GenreIDs: []int{fantasy, poetry, drama, horror},
	})
	require.NoError(t, err)

	insertCopy(t, pool, id, "a")
	insertCopy(t, pool, id, "a")
	insertCopy(t, pool, id, "o")
	insertCopy(t, pool, id, "m")

	b, err := repo.GetBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy, Poetry, Drama", b.DisplayGenre())
	assert.Equal(t, 2, b.AvailableCount)
	assert.Nil(t, b.Author)
	assert.Nil(t, b.Language)

	count, err := repo.CountAvailable(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = repo.CountAvailable(ctx, id+100)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

/*
TestPostgresRepository_UpdateReplacesGenres rewrites links and positions.
*/
func TestPostgresRepository_UpdateReplacesGenres(t *testing.T) {
	pool := pgtest.Open(t)
	repo := book.NewPostgresRepository(pool)
	ctx := context.Background()

	first := insertGenre(t, pool, "First", "first")
	second := insertGenre(t, pool, "Second", "second")

	id, err := repo.CreateBook(ctx, &book.Input{Title: "T", ISBN: "0000000000001", GenreIDs: []int{first, second}})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateBook(ctx, id, &book.Input{Title: "T2", ISBN: "0000000000001", GenreIDs: []int{second}}))

	b, err := repo.GetBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "T2", b.Title)
	require.Len(t, b.Genres, 1)
	assert.Equal(t, "Second", b.Genres[0].Name)

	err = repo.UpdateBook(ctx, id+100, &book.Input{Title: "x", ISBN: "0000000000001"})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

/*
TestPostgresRepository_UnknownReference maps a foreign key failure to 422.
*/
func TestPostgresRepository_UnknownReference(t *testing.T) {
	pool := pgtest.Open(t)
	repo := book.NewPostgresRepository(pool)

	_, err := repo.CreateBook(context.Background(), &book.Input{
		Title:    "Orphan",
		ISBN:     "0000000000002",
		AuthorID: pointer.To(4242),
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeUnprocessable))

	_, err = repo.CreateBook(context.Background(), &book.Input{
		Title:    "Orphan",
		ISBN:     "0000000000002",
		GenreIDs: []int{4242},
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeUnprocessable))
}

/*
TestPostgresRepository_DeleteKeepsCopies clears the book of its copies.
*/
func TestPostgresRepository_DeleteKeepsCopies(t *testing.T) {
	pool := pgtest.Open(t)
	repo := book.NewPostgresRepository(pool)
	ctx := context.Background()

	id, err := repo.CreateBook(ctx, &book.Input{Title: "Gone", ISBN: "0000000000003"})
	require.NoError(t, err)
	insertCopy(t, pool, id, "a")

	require.NoError(t, repo.DeleteBook(ctx, id))

	var orphans int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM catalog.bookinstance WHERE bookid IS NULL`).Scan(&orphans))
	assert.Equal(t, 1, orphans)

	assert.True(t, apperr.IsCode(repo.DeleteBook(ctx, id), apperr.CodeNotFound))
}

/*
TestPostgresRepository_SearchIsLiteral treats % and _ in the title search as
plain characters.
*/
func TestPostgresRepository_SearchIsLiteral(t *testing.T) {
	pool := pgtest.Open(t)
	repo := book.NewPostgresRepository(pool)
	ctx := context.Background()

	for _, title := range []string{"100% Dune", "Dune_Messiah", "Dune"} {
		_, err := repo.CreateBook(ctx, &book.Input{Title: title, ISBN: "9780441013593"})
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"dune", []string{"100% Dune", "Dune", "Dune_Messiah"}},
		{"%", []string{"100% Dune"}},
		{"_", []string{"Dune_Messiah"}},
		{"e_m", []string{"Dune_Messiah"}},
		{"D%e", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			books, total, err := repo.ListBooks(ctx, book.Filter{Query: tt.query}, 10, 0)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), total)

			var titles []string
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}
