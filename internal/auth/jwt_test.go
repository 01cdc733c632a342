package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParseRoundtrip(t *testing.T) {
	j := NewJWT("test-key", time.Hour)

	token, err := j.Generate("alice")
	require.Nil(t, err)
	require.NotEmpty(t, token)

	claims, err := j.Parse(token)
	require.Nil(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseWrongKey(t *testing.T) {
	j := NewJWT("test-key", time.Hour)
	other := NewJWT("another-key", time.Hour)

	token, err := j.Generate("alice")
	require.Nil(t, err)

	_, err = other.Parse(token)
	assert.Equal(t, ErrTokenInvalid, err)
}

func TestParseExpired(t *testing.T) {
	j := NewJWT("test-key", -time.Hour)

	token, err := j.Generate("alice")
	require.Nil(t, err)

	_, err = j.Parse(token)
	assert.Equal(t, ErrTokenExpired, err)
}

func TestParseMalformed(t *testing.T) {
	j := NewJWT("test-key", time.Hour)

	_, err := j.Parse("not-a-token")
	assert.Equal(t, ErrTokenMalformed, err)
}

func TestRefreshExpiredToken(t *testing.T) {
	expired := NewJWT("test-key", -time.Hour)
	fresh := NewJWT("test-key", time.Hour)

	token, err := expired.Generate("alice")
	require.Nil(t, err)

	renewed, err := fresh.Refresh(token)
	require.Nil(t, err)

	claims, err := fresh.Parse(renewed)
	require.Nil(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestRefreshRejectsForeignToken(t *testing.T) {
	j := NewJWT("test-key", time.Hour)
	other := NewJWT("another-key", time.Hour)

	token, err := other.Generate("alice")
	require.Nil(t, err)

	_, err = j.Refresh(token)
	assert.Equal(t, ErrTokenInvalid, err)
}
