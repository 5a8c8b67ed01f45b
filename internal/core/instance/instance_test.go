// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package instance_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

/*
TestString renders the title and id, with a placeholder for deleted books.
*/
func TestString(t *testing.T) {
	i := instance.Instance{ID: "abc", Book: &instance.BookRef{ID: 1, Title: "Dune"}}
	assert.Equal(t, "Dune(abc)", i.String())

	i.Book = nil
	assert.Equal(t, "[deleted book](abc)", i.String())
}

/*
TestIsOverdue covers the strict boundary and the undated case.
*/
func TestIsOverdue(t *testing.T) {
	today := date.MustParse("2026-10-14")

	tests := []struct {
		name string
		due  *date.Date
		want bool
	}{
		{"no due date", nil, false},
		{"zero due date", &date.Date{}, false},
		{"yesterday", pointer.To(today.AddDays(-1)), true},
		{"today", pointer.To(today), false},
		{"tomorrow", pointer.To(today.AddDays(1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := instance.Instance{DueBack: tt.due}
			assert.Equal(t, tt.want, i.IsOverdue(today))
		})
	}
}

/*
TestIsOverdue_Property holds for arbitrary due dates and days.
*/
func TestIsOverdue_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		today := date.New(2026, time.January, 1).AddDays(rapid.IntRange(0, 3650).Draw(t, "today"))
		offset := rapid.IntRange(-400, 400).Draw(t, "offset")
		due := today.AddDays(offset)

		i := instance.Instance{DueBack: &due}
		if got := i.IsOverdue(today); got != (offset < 0) {
			t.Fatalf("IsOverdue(due=%s, today=%s) = %v", due, today, got)
		}

		undated := instance.Instance{Status: status.OnLoan}
		if undated.IsOverdue(today) {
			t.Fatalf("undated copy reported overdue on %s", today)
		}
	})
}

/*
TestCountAvailable_Property checks how status changes move the count.
*/
func TestCountAvailable_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		codes := rapid.SliceOf(rapid.SampledFrom(status.All())).Draw(t, "statuses")

		instances := make([]*instance.Instance, 0, len(codes))
		want := 0
		for _, code := range codes {
			instances = append(instances, &instance.Instance{Status: code})
			if code == status.Available {
				want++
			}
		}
		if got := instance.CountAvailable(instances); got != want {
			t.Fatalf("CountAvailable = %d, want %d", got, want)
		}

		onLoan := &instance.Instance{Status: status.OnLoan}
		instances = append(instances, onLoan)
		if got := instance.CountAvailable(instances); got != want {
			t.Fatalf("adding an on-loan copy changed the count to %d", got)
		}

		onLoan.Status = status.Available
		if got := instance.CountAvailable(instances); got != want+1 {
			t.Fatalf("returning a copy gave %d, want %d", got, want+1)
		}
	})
}

/*
TestViewAt_JSON serializes the derived fields.
*/
func TestViewAt_JSON(t *testing.T) {
	due := date.MustParse("2026-10-01")
	i := &instance.Instance{
		ID:      "0192",
		Book:    &instance.BookRef{ID: 5, Title: "Dune"},
		Imprint: "Ace, 1990",
		DueBack: &due,
		Status:  status.OnLoan,
	}

	encoded, err := json.Marshal(i.ViewAt(date.MustParse("2026-10-14")))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, true, decoded["is_overdue"])
	assert.Equal(t, "On Loan", decoded["status_label"])
	assert.Equal(t, "o", decoded["status"])
	assert.Equal(t, "2026-10-01", decoded["due_back"])
	assert.Equal(t, "Dune(0192)", decoded["display_name"])
	assert.Nil(t, decoded["borrower_id"])

	bookJSON, ok := decoded["book"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/book/5/", bookJSON["url"])
}
