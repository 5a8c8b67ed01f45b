// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

/*
TestUserRole_AtLeast covers the admin > librarian > member hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleLibrarian))
	assert.True(t, sec.RoleLibrarian.AtLeast(sec.RoleLibrarian))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleLibrarian))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleMember))

	assert.True(t, sec.RoleLibrarian.CanMarkReturned())
	assert.False(t, sec.RoleMember.CanMarkReturned())

	assert.True(t, sec.RoleMember.Valid())
	assert.False(t, sec.UserRole("").Valid())
}

/*
TestHashPassword verifies bcrypt round trip.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))
}

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip ensures claims survive signing and verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "locallibrary")

	token, err := service.GenerateAccessToken("u-1", "alice", string(sec.RoleLibrarian), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, sec.RoleLibrarian, claims.UserRole())
}

/*
TestTokenService_Rejects covers expired tokens, foreign issuers and garbage input.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "locallibrary")

	expired, err := service.GenerateAccessToken("u-1", "alice", "member", -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	foreign := newTokenService(t, "someone-else")
	token, err := foreign.GenerateAccessToken("u-1", "alice", "member", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(token)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-token")
	assert.Error(t, err)
}
