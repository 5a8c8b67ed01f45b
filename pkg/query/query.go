// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses typed values out of URL query strings.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// IntSlice parses a comma-separated list ("1,2,3") into integers.
// Invalid entries are ignored.
func IntSlice(val string) []int {
	var res []int
	for _, v := range StringSlice(val) {
		if i, err := strconv.Atoi(v); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// StringSlice splits a comma-separated query value into trimmed, non-empty parts.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Bool reads key as a boolean ("true", "1", "false", "0"). Missing or
// malformed values are false.
func Bool(values url.Values, key string) bool {
	v, _ := strconv.ParseBool(values.Get(key))
	return v
}

// OptionalInt reads key as an integer, returning nil when it is missing or
// malformed.
func OptionalInt(values url.Values, key string) *int {
	v, err := strconv.Atoi(values.Get(key))
	if err != nil {
		return nil
	}
	return &v
}

// Trimmed returns the whitespace-trimmed value of key.
func Trimmed(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}
