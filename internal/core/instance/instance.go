// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package instance manages physical copies of books.

A copy is keyed by a UUIDv7 assigned at creation and never changed. It
optionally references a book and a borrower; deleting either leaves the
copy in place with the reference cleared. Whether a copy is overdue is
derived on every read from the injected clock and never stored.

Any status may move to any other status. Loans and renewals live in
package loan.
*/
package instance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// deletedBookTitle stands in for the title of a copy whose book is gone.
const deletedBookTitle = "[deleted book]"

// Instance is a single loanable copy.
type Instance struct {
	ID         string        `json:"id"`
	Book       *BookRef      `json:"book"`
	Imprint    string        `json:"imprint"`
	DueBack    *date.Date    `json:"due_back"`
	BorrowerID *string       `json:"borrower_id"`
	Status     status.Status `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BookRef is the part of the book a copy displays.
type BookRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// MarshalJSON adds the book's locator.
func (b BookRef) MarshalJSON() ([]byte, error) {
	type fields BookRef
	return json.Marshal(struct {
		fields
		URL string `json:"url"`
	}{fields(b), book.Locator(b.ID)})
}

// String renders "{title}({id})".
func (i Instance) String() string {
	title := deletedBookTitle
	if i.Book != nil {
		title = i.Book.Title
	}
	return fmt.Sprintf("%s(%s)", title, i.ID)
}

// IsOverdue reports whether the copy was due strictly before today. A copy
// with no due date is never overdue.
func (i Instance) IsOverdue(today date.Date) bool {
	return i.DueBack != nil && !i.DueBack.IsZero() && i.DueBack.Before(today)
}

// IsAvailable reports whether the copy can be borrowed.
func (i Instance) IsAvailable() bool {
	return i.Status == status.Available
}

// CountAvailable counts the available copies in instances. It is the
// in-memory twin of the available_count sub-select.
func CountAvailable(instances []*Instance) int {
	return slice.Count(instances, func(i *Instance) bool { return i.IsAvailable() })
}

// View is the JSON shape of a copy as of a given day.
type View struct {
	*Instance
	DisplayName string `json:"display_name"`
	StatusLabel string `json:"status_label"`
	Overdue     bool   `json:"is_overdue"`
}

// ViewAt evaluates the derived fields against today.
func (i *Instance) ViewAt(today date.Date) View {
	return View{
		Instance:    i,
		DisplayName: i.String(),
		StatusLabel: i.Status.Label(),
		Overdue:     i.IsOverdue(today),
	}
}

// WithoutBorrower returns a copy of v with the borrower removed.
func (v View) WithoutBorrower() View {
	anonymous := *v.Instance
	anonymous.BorrowerID = nil
	v.Instance = &anonymous
	return v
}

// Views evaluates every copy against the same day.
func Views(instances []*Instance, today date.Date) []View {
	return slice.Map(instances, func(i *Instance) View { return i.ViewAt(today) })
}

// Input is the writable part of a copy.
type Input struct {
	BookID     *int          `json:"book_id"`
	Imprint    string        `json:"imprint"`
	DueBack    *date.Date    `json:"due_back"`
	BorrowerID *string       `json:"borrower_id"`
	Status     status.Status `json:"status"`
}

// Filter narrows a copy listing. Zero values do not filter.
type Filter struct {
	BookID     *int
	Statuses   []status.Status
	BorrowerID string
	// DueBefore keeps copies whose due date is set and strictly earlier.
	DueBefore *date.Date
}

// Global field names for validation
const (
	FieldBookID     = "book_id"
	FieldImprint    = "imprint"
	FieldBorrowerID = "borrower_id"
	FieldStatus     = "status"

	maxImprintLength = 200
)
