// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package clock abstracts the wall clock so that "today" can be injected.
//
// Overdue checks and renewal windows depend on the current date. Services
// take a [Clock] in their constructor; production wires [System], tests wire
// [Fixed].
package clock

import (
	"time"

	"github.com/taibuivan/locallibrary/pkg/date"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// Today returns the calendar date of c.Now() in the clock's own location.
func Today(c Clock) date.Date {
	return date.Of(c.Now())
}

// System reads the operating system clock in a fixed location.
type System struct {
	Location *time.Location
}

// NewSystem returns a system clock for location (UTC when nil).
func NewSystem(location *time.Location) System {
	if location == nil {
		location = time.UTC
	}
	return System{Location: location}
}

// Now implements [Clock].
func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(s.Location)
}

// Fixed always reports the same instant.
type Fixed time.Time

// At returns a [Fixed] clock at midnight UTC of d.
func At(d date.Date) Fixed {
	return Fixed(d.Time())
}

// Now implements [Clock].
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
