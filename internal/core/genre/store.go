// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

type Repository interface {
	ListGenres(ctx context.Context) ([]*Genre, error)
	GetGenre(ctx context.Context, id int) (*Genre, error)
	GetGenreBySlug(ctx context.Context, slug string) (*Genre, error)
	CreateGenre(ctx context.Context, g *Genre) error
	UpdateGenre(ctx context.Context, g *Genre) error
	DeleteGenre(ctx context.Context, id int) error
}
