// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// UserRepository defines the data access contract for accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByLogin matches username or email, case-insensitively.
	FindByLogin(ctx context.Context, login string) (*User, error)

	// Exists reports which of username and email are already taken.
	Exists(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)

	Create(ctx context.Context, user *User) error
	TouchLastLogin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
