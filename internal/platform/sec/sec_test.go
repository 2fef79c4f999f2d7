// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/sec"
)

func newSigner(t *testing.T, secret, tokenType string) *sec.Signer {
	t.Helper()
	signer, err := sec.NewSigner(secret, "vidtube", tokenType)
	require.NoError(t, err)
	return signer
}

/*
TestSigner_RoundTrip verifies a signed token verifies with the same signer.
*/
func TestSigner_RoundTrip(t *testing.T) {
	signer := newSigner(t, "s3cret", sec.TokenTypeAccess)

	token, expiresAt, err := signer.Sign(sec.AuthClaims{UserID: "u1", Username: "alice"}, time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 2*time.Second)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, sec.TokenTypeAccess, claims.Type)
}

/*
TestSigner_Rejects verifies the failure modes all map to ErrInvalidToken.
*/
func TestSigner_Rejects(t *testing.T) {
	access := newSigner(t, "access", sec.TokenTypeAccess)
	refresh := newSigner(t, "refresh", sec.TokenTypeRefresh)

	good, _, err := access.Sign(sec.AuthClaims{UserID: "u1"}, time.Minute)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	expired, _, err := access.WithClock(func() time.Time { return past }).Sign(sec.AuthClaims{UserID: "u1"}, time.Minute)
	require.NoError(t, err)

	sameSecretOtherType := newSigner(t, "access", sec.TokenTypeRefresh)
	wrongType, _, err := sameSecretOtherType.Sign(sec.AuthClaims{UserID: "u1"}, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		signer *sec.Signer
		token  string
	}{
		{"empty", access, ""},
		{"malformed", access, "not.a.jwt"},
		{"wrong_secret", refresh, good},
		{"expired", access, expired},
		{"wrong_type", access, wrongType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.signer.Verify(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

func TestNewSigner_EmptySecret(t *testing.T) {
	_, err := sec.NewSigner("", "vidtube", sec.TokenTypeAccess)
	assert.Error(t, err)
}

/*
TestPasswordHash verifies bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("battery staple", hash))
}

func TestHashToken(t *testing.T) {
	digest := sec.HashToken("abc")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, sec.HashToken("abc"))
	assert.True(t, sec.TokenMatches("abc", digest))
	assert.False(t, sec.TokenMatches("abd", digest))
}
