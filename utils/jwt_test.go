package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvis-tamrakar/productivity-buddy/config"
)

func init() {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret", JWTExpiryHours: 24})
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("alice@example.com", 42, time.Hour)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.False(t, IsTokenExpired(token))
}

func TestGenerateToken_UniquePerIssue(t *testing.T) {
	first, err := GenerateToken("alice@example.com", 42, time.Hour)
	require.NoError(t, err)
	second, err := GenerateToken("alice@example.com", 42, time.Hour)
	require.NoError(t, err)

	// Same identity issued twice in the same second must still yield
	// distinct tokens, otherwise revoking one revokes both.
	assert.NotEqual(t, first, second)

	claims, err := ParseToken(first)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("alice@example.com", 42, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
	assert.True(t, IsTokenExpired(token))
}

func TestParseToken_Tampered(t *testing.T) {
	token, err := GenerateToken("alice@example.com", 42, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = ParseToken(tampered)
	assert.Error(t, err)
	assert.True(t, IsTokenExpired(tampered))
}

func TestIsTokenExpired_Garbage(t *testing.T) {
	assert.True(t, IsTokenExpired("not-a-token"))
	assert.True(t, IsTokenExpired(""))
}
