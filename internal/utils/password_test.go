package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("geheim123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "geheim123"))
	assert.False(t, VerifyPassword(hash, "fout"))
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	// 99 exceeds bcrypt's maximum; the hash must still come out usable.
	hash, err := HashPassword("geheim123", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.True(t, VerifyPassword(hash, "geheim123"))
}
