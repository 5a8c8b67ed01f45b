// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 1 * time.Hour

	minUsernameLength    = 3
	maxUsernameLength    = 50
	maxEmailLength       = 254
	minPasswordLength    = 8
	maxPasswordLength    = 72 // bcrypt ignores input past 72 bytes
	maxDisplayNameLength = 100
)
