// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers.

It wraps google/uuid to generate Version 7 values. Book copies and user
accounts use them as primary keys; they are also used as request ids and
anonymous visitor ids.

Advantages:

  - Sortable: naturally ordered by creation time (millisecond precision).
  - Index friendly: new keys append to the right of a PostgreSQL B-tree.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether value parses as a UUID of any version.
func Valid(value string) bool {
	return uuid.Validate(value) == nil
}
