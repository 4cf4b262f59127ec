package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	m := NewManager([]byte("test-secret"))

	hash, err := m.HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "hunter2")

	// A fresh salt every call means two hashes of the same password differ.
	again, err := m.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestVerifyPassword(t *testing.T) {
	m := NewManager([]byte("test-secret"))

	hash, err := m.HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, m.VerifyPassword("hunter2", hash))
	assert.False(t, m.VerifyPassword("hunter3", hash))
	assert.False(t, m.VerifyPassword("hunter2", "not-a-phc-string"))
	assert.False(t, m.VerifyPassword("hunter2", ""))
}

func TestTokenRoundtrip(t *testing.T) {
	m := NewManager([]byte("test-secret"))

	token, err := m.IssueAccessToken("alice")
	require.NoError(t, err)

	username, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewManager([]byte("first-secret")).IssueAccessToken("alice")
	require.NoError(t, err)

	_, err = NewManager([]byte("other-secret")).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	m := NewManager([]byte("test-secret"))

	_, err := m.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenHashRoundtrip(t *testing.T) {
	m := NewManager([]byte("test-secret"))

	token, err := m.IssueRefreshToken("alice")
	require.NoError(t, err)

	hash, err := m.HashToken(token)
	require.NoError(t, err)

	assert.True(t, m.VerifyTokenHash(token, hash))
	assert.False(t, m.VerifyTokenHash(token+"x", hash))
}
