// File: internal/common/password_test.go
package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Abcdefg1!", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdefg1!", hash)

	assert.True(t, CheckPasswordHash("Abcdefg1!", hash))
	assert.False(t, CheckPasswordHash("abcdefg1!", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestCheckPasswordHashEmptyHashFailsClosed(t *testing.T) {
	// Accounts without a stored hash (federated-only) must never verify.
	assert.False(t, CheckPasswordHash("anything", ""))
	assert.False(t, CheckPasswordHash("", ""))
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	hash, err := HashPassword("Abcdefg1!", -1)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("Abcdefg1!", hash))
}
