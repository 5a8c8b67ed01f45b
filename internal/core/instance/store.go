// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package instance

import (
	"context"

	"github.com/taibuivan/locallibrary/pkg/date"
)

// Repository defines the persistence contract for copies.
type Repository interface {
	// ListInstances orders by due date ascending, undated copies last.
	ListInstances(ctx context.Context, f Filter, limit, offset int) ([]*Instance, int, error)
	GetInstance(ctx context.Context, id string) (*Instance, error)
	CreateInstance(ctx context.Context, id string, in *Input) error
	UpdateInstance(ctx context.Context, id string, in *Input) error
	DeleteInstance(ctx context.Context, id string) error

	// SetDueBack moves only the due date.
	SetDueBack(ctx context.Context, id string, due date.Date) error
	// MarkReturned makes the copy available and clears borrower and due date.
	MarkReturned(ctx context.Context, id string) error
}
