// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package loan implements the lending rules on top of package instance.

The central rule is the renewal window: a copy's due date may be moved to
any day from today up to and including four weeks ahead.

	today ........................... today+28
	  ^ accepted                        ^ accepted
	today-1 rejected (past)           today+29 rejected (too far)

Renewals, returns and the "all copies on loan" listing are reserved to roles
that may mark copies returned. Patrons can list their own loans.
*/
package loan

import (
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/pkg/date"
)

const (
	// RenewalWindowDays is the furthest a due date may be moved ahead.
	RenewalWindowDays = 28

	// DefaultRenewalDays is the renewal proposed when the form opens.
	DefaultRenewalDays = 21
)

// FieldRenewalDate is the form field renewal errors are attached to.
const FieldRenewalDate = "renewal_date"

// Renewal error codes.
const (
	CodeRenewalInPast  = "RENEWAL_DATE_IN_PAST"
	CodeRenewalTooFar  = "RENEWAL_DATE_TOO_FAR"
	msgRenewalInPast   = "Invalid date - renewal in past"
	msgRenewalTooFar   = "Invalid date - renewal more than 4 weeks ahead"
	msgRenewalRequired = "Enter a date between now and 4 weeks (default 3)."
)

var (
	// ErrRenewalInPast rejects a date earlier than today.
	ErrRenewalInPast = apperr.Invalid(CodeRenewalInPast, msgRenewalInPast,
		apperr.FieldError{Field: FieldRenewalDate, Message: msgRenewalInPast})

	// ErrRenewalTooFar rejects a date beyond [RenewalWindowDays].
	ErrRenewalTooFar = apperr.Invalid(CodeRenewalTooFar, msgRenewalTooFar,
		apperr.FieldError{Field: FieldRenewalDate, Message: msgRenewalTooFar})
)

// ValidateRenewalDate accepts candidate iff today <= candidate <= today+28
// and returns it unchanged. The past check runs first.
func ValidateRenewalDate(candidate, today date.Date) (date.Date, error) {
	if candidate.Before(today) {
		return date.Date{}, ErrRenewalInPast
	}
	if candidate.After(LatestRenewal(today)) {
		return date.Date{}, ErrRenewalTooFar
	}
	return candidate, nil
}

// LatestRenewal is the last day [ValidateRenewalDate] accepts.
func LatestRenewal(today date.Date) date.Date {
	return today.AddDays(RenewalWindowDays)
}

// ProposedRenewal is the default renewal date offered for today.
func ProposedRenewal(today date.Date) date.Date {
	return today.AddDays(DefaultRenewalDays)
}
