// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package date provides a calendar date without time-of-day or zone.

Due dates, renewal dates and author life dates are whole days. Comparing
[time.Time] values for these leaks hours and zones into the rules, so the
domain uses [Date] instead:

  - JSON: "YYYY-MM-DD" (null for a zero Date behind a pointer).
  - PostgreSQL: implements pgtype.DateScanner and pgtype.DateValuer so pgx
    reads and writes `date` columns directly.
*/
package date

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Layout is the ISO-8601 calendar date layout used on the wire.
const Layout = "2006-01-02"

// Date is a calendar day. The zero value is "no date".
type Date struct {
	t time.Time
}

// New returns the date year-month-day. Out-of-range values normalize the way
// [time.Date] does (e.g. February 30 becomes March 1 or 2).
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date {
	year, month, day := t.Date()
	return New(year, month, day)
}

// Parse reads a "YYYY-MM-DD" string.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("date: invalid date %q: %w", value, err)
	}
	return Date{t: t}, nil
}

// MustParse is [Parse] for literals in tests and fixtures.
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

// # Arithmetic & Comparison

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare returns -1, 0 or +1 like [time.Time.Compare].
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }

// DaysUntil returns the number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// IsZero reports whether d is the zero ("no date") value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

// String formats d as "YYYY-MM-DD"; the zero date is the empty string.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// # JSON

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements [json.Unmarshaler]. null leaves the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date: expected a string: %w", err)
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// # PostgreSQL

// ScanDate implements pgtype.DateScanner.
func (d *Date) ScanDate(value pgtype.Date) error {
	if !value.Valid {
		*d = Date{}
		return nil
	}
	if value.InfinityModifier != pgtype.Finite {
		return fmt.Errorf("date: cannot scan infinite date")
	}
	*d = Of(value.Time)
	return nil
}

// DateValue implements pgtype.DateValuer. The zero date is written as NULL.
func (d Date) DateValue() (pgtype.Date, error) {
	if d.IsZero() {
		return pgtype.Date{}, nil
	}
	return pgtype.Date{Time: d.t, Valid: true}, nil
}
