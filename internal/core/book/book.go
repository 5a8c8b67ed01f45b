// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages catalog titles: the abstract book rather than a physical
copy (see package instance for copies).

A book optionally references one author and one language, and carries an
ordered set of genres. Deleting the author or language leaves the book in
place with the reference cleared. Copies count towards a book's
availability only while their status is "a".
*/
package book

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/genre"
	"github.com/taibuivan/locallibrary/internal/core/language"
)

// displayGenreLimit bounds how many genres [Book.DisplayGenre] lists.
const displayGenreLimit = 3

// Book is a hydrated catalog entry as returned by reads.
type Book struct {
	ID             int                `json:"id"`
	Title          string             `json:"title"`
	Summary        string             `json:"summary"`
	ISBN           string             `json:"isbn"`
	Author         *AuthorSummary     `json:"author"`
	Language       *language.Language `json:"language"`
	Genres         []genre.Genre      `json:"genres"`
	AvailableCount int                `json:"available_count"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// AuthorSummary is the slice of an author embedded in a book.
type AuthorSummary struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MarshalJSON adds the author's display name and locator.
func (a AuthorSummary) MarshalJSON() ([]byte, error) {
	type fields AuthorSummary
	full := author.Author{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName}
	return json.Marshal(struct {
		fields
		DisplayName string `json:"display_name"`
		URL         string `json:"url"`
	}{fields(a), full.String(), author.Locator(a.ID)})
}

// String returns the book title.
func (b Book) String() string {
	return b.Title
}

// Locator is the canonical path of a book's detail page.
func Locator(id int) string {
	return fmt.Sprintf("/book/%d/", id)
}

// DisplayGenre joins the names of at most the first three genres, in the
// order they were assigned, with ", ".
func (b Book) DisplayGenre() string {
	names := make([]string, 0, displayGenreLimit)
	for i, g := range b.Genres {
		if i == displayGenreLimit {
			break
		}
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// MarshalJSON adds the locator and genre summary to the stored fields.
func (b Book) MarshalJSON() ([]byte, error) {
	type fields Book
	if b.Genres == nil {
		b.Genres = []genre.Genre{}
	}
	return json.Marshal(struct {
		fields
		DisplayGenre string `json:"display_genre"`
		URL          string `json:"url"`
	}{fields(b), b.DisplayGenre(), Locator(b.ID)})
}

// Input is the writable part of a book. Genre order is significant.
type Input struct {
	Title      string `json:"title"`
	AuthorID   *int   `json:"author_id"`
	LanguageID *int   `json:"language_id"`
	Summary    string `json:"summary"`
	ISBN       string `json:"isbn"`
	GenreIDs   []int  `json:"genre_ids"`
}

// Filter narrows a paginated book listing. Zero values do not filter.
type Filter struct {
	Query      string // substring match against the title
	AuthorID   *int
	LanguageID *int
	GenreID    *int
}

// Global field names for validation
const (
	FieldTitle      = "title"
	FieldSummary    = "summary"
	FieldISBN       = "isbn"
	FieldAuthorID   = "author_id"
	FieldLanguageID = "language_id"
	FieldGenreIDs   = "genre_ids"

	maxTitleLength   = 200
	maxSummaryLength = 1000
	isbnLength       = 13
)
