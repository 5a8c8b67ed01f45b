// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/uuid"
)

/*
TestNew_IsTimeOrdered verifies v7 ids sort by creation.
*/
func TestNew_IsTimeOrdered(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.Equal(t, byte('7'), first[14])
	assert.LessOrEqual(t, first[:13], second[:13])
	assert.False(t, uuid.Valid("not-a-uuid"))
}
