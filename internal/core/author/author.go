// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/pkg/date"
)

// Author represents the writer of one or more books.
//
// Birth and death dates are optional and are not cross-checked.
type Author struct {
	ID          int        `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *date.Date `json:"date_of_birth"`
	DateOfDeath *date.Date `json:"date_of_death"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// String returns "Last, First", the catalog's display form.
func (a Author) String() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}

// Locator is the canonical path of an author's detail page.
func Locator(id int) string {
	return fmt.Sprintf("/author/%d/", id)
}

// MarshalJSON adds the display name and locator to the stored fields.
func (a Author) MarshalJSON() ([]byte, error) {
	type fields Author
	return json.Marshal(struct {
		fields
		DisplayName string `json:"display_name"`
		URL         string `json:"url"`
	}{fields(a), a.String(), Locator(a.ID)})
}

// Compare orders authors by last name, then first name, byte-wise. It is the
// in-memory twin of the listing's ORDER BY.
func Compare(a, b *Author) int {
	if c := strings.Compare(a.LastName, b.LastName); c != 0 {
		return c
	}
	return strings.Compare(a.FirstName, b.FirstName)
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // substring match against first or last name
}

// Global field names for validation
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDateOfBirth = "date_of_birth"
	FieldDateOfDeath = "date_of_death"

	maxNameLength = 100
)
