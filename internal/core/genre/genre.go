// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package genre manages the genres books are classified under.
//
// A genre's slug is derived from its name on every write and is unique, so
// "/genres/by-slug/science-fiction" is a stable address.
package genre

// Genre is a category of fiction or non-fiction ("Science Fiction", "Poetry").
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// String returns the genre name.
func (g Genre) String() string {
	return g.Name
}

const (
	FieldName = "name"

	maxNameLength = 200
)
