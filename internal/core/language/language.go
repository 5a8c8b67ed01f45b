// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package language manages the languages a book can be written in.
package language

// Language is a natural language a book is written in ("English", "French").
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// String returns the language name.
func (l Language) String() string {
	return l.Name
}

// Global field names for validation
const (
	FieldName = "name"

	maxNameLength = 200
)
