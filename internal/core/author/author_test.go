// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/pkg/date"
)

/*
TestAuthor_String uses "Last, First".
*/
func TestAuthor_String(t *testing.T) {
	a := author.Author{FirstName: "Ursula", LastName: "Le Guin"}
	assert.Equal(t, "Le Guin, Ursula", a.String())
	assert.Equal(t, "/author/12/", author.Locator(12))
}

/*
TestCompare orders by last name, then first name.
*/
func TestCompare(t *testing.T) {
	authors := []*author.Author{
		{FirstName: "Jane", LastName: "Doe"},
		{FirstName: "Alan", LastName: "Doe"},
		{FirstName: "Zoe", LastName: "Ames"},
	}

	slices.SortFunc(authors, author.Compare)

	var names []string
	for _, a := range authors {
		names = append(names, a.String())
	}
	assert.Equal(t, []string{"Ames, Zoe", "Doe, Alan", "Doe, Jane"}, names)
}

/*
TestAuthor_MarshalJSON includes the locator and keeps missing dates null.
*/
func TestAuthor_MarshalJSON(t *testing.T) {
	born := date.MustParse("1929-10-21")
	a := author.Author{ID: 4, FirstName: "Ursula", LastName: "Le Guin", DateOfBirth: &born}

	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "/author/4/", decoded["url"])
	assert.Equal(t, "Le Guin, Ursula", decoded["display_name"])
	assert.Equal(t, "1929-10-21", decoded["date_of_birth"])
	assert.Nil(t, decoded["date_of_death"])
}
