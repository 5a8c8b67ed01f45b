// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/pagination"
)

/*
TestFromValues covers defaults and clamping.
*/
func TestFromValues(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"page=-1&limit=500", pagination.Params{Page: 1, Limit: 20}},
		{"page=abc&limit=0", pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		values, _ := url.ParseQuery(tt.query)
		assert.Equal(t, tt.want, pagination.FromValues(values), tt.query)
	}

	assert.Equal(t, 20, pagination.Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())
}

/*
TestNewMeta rounds total pages up.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(1, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	meta = pagination.NewMeta(3, 20, 41)
	assert.False(t, meta.HasNext)

	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
}
