// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth manages library accounts: patrons who borrow copies and the
staff that lend them.

An account carries one role. Members can list their own loans; librarians
manage the catalog and loans; admins can additionally remove accounts.
Deleting an account clears it as borrower on every copy it held.

Login issues a short-lived RS256 access token. There are no refresh tokens.
*/
package auth

import (
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

const resourceName = "User"

// User is a library account.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	LastLoginAt  *time.Time   `json:"last_login_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Global field names for validation
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
)
