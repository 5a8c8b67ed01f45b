// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Genres are addressable by slug ("Science Fiction" becomes "science-fiction",
// "Poésie" becomes "poesie").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	pattern         = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// The input is decomposed (NFD), combining marks are dropped, the rest is
// lowercased and every run of non-alphanumerics becomes a single hyphen.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripAccents, s)
	if err != nil {
		result = s
	}

	result = nonAlphanumeric.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
