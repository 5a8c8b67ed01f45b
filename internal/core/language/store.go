// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListLanguages(ctx context.Context) ([]*Language, error)
	GetLanguage(ctx context.Context, id int) (*Language, error)
	CreateLanguage(ctx context.Context, l *Language) error
	UpdateLanguage(ctx context.Context, l *Language) error
	DeleteLanguage(ctx context.Context, id int) error
}
