// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository is the book aggregate's data access contract. Genre links are
// written together with the book.
type Repository interface {
	ListBooks(ctx context.Context, f Filter, limit, offset int) ([]*Book, int, error)
	GetBook(ctx context.Context, id int) (*Book, error)
	CreateBook(ctx context.Context, in *Input) (int, error)
	UpdateBook(ctx context.Context, id int, in *Input) error
	DeleteBook(ctx context.Context, id int) error

	// CountAvailable counts the book's copies whose status is "a".
	CountAvailable(ctx context.Context, id int) (int, error)
}
