// File: internal/common/errors_test.go
package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	err := ErrNotFound.WithDetails("User not found.")

	assert.Equal(t, "User not found.", err.Details)
	assert.Nil(t, ErrNotFound.Details, "sentinel must stay pristine")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAPIErrorIsMatchesByCode(t *testing.T) {
	assert.True(t, errors.Is(ErrInvalidCredentials.WithDetails("x"), ErrInvalidCredentials))
	assert.False(t, errors.Is(ErrNotFound, ErrConflict))

	wrapped := fmt.Errorf("outer: %w", ErrConflict.WithDetails("dup"))
	assert.True(t, errors.Is(wrapped, ErrConflict))
}

func TestInvalidCredentialsShape(t *testing.T) {
	assert.Equal(t, 401, ErrInvalidCredentials.StatusCode)
	assert.Equal(t, "Invalid email or password.", ErrInvalidCredentials.Message)
}
