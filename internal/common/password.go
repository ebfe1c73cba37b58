// File: internal/common/password.go
package common

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when the configured cost is
// out of bcrypt's valid range.
const DefaultBcryptCost = 10

// HashPassword produces a bcrypt digest of the plaintext password.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password against a bcrypt digest.
// An empty digest is the sentinel for "no password set" (federated-only
// accounts) and always fails, it never matches and never panics.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
