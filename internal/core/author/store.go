// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import "context"

type Repository interface {
	ListAuthors(ctx context.Context, f Filter, limit, offset int) ([]*Author, int, error)
	GetAuthor(ctx context.Context, id int) (*Author, error)
	CreateAuthor(ctx context.Context, a *Author) error
	UpdateAuthor(ctx context.Context, a *Author) error
	DeleteAuthor(ctx context.Context, id int) error
}
