// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package status enumerates the lifecycle states of a physical copy.
//
// The codes are single letters because that is how they are stored.
package status

// Status is the stored code of a copy's state.
type Status string

const (
	Maintenance Status = "m"
	OnLoan      Status = "o"
	Available   Status = "a"
	Reserved    Status = "r"
)

// Default is the status of a copy created without one.
const Default = Maintenance

var labels = map[Status]string{
	Maintenance: "Maintenance",
	OnLoan:      "On Loan",
	Available:   "Available",
	Reserved:    "Reserved",
}

// All lists every status in display order.
func All() []Status {
	return []Status{Maintenance, OnLoan, Available, Reserved}
}

// Codes lists the stored codes, for validation messages.
func Codes() []string {
	codes := make([]string, 0, len(labels))
	for _, s := range All() {
		codes = append(codes, string(s))
	}
	return codes
}

// Valid reports whether s is one of the four known codes.
func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Label is the human-readable name of s, or the raw code when unknown.
func (s Status) Label() string {
	if label, ok := labels[s]; ok {
		return label
	}
	return string(s)
}
