// File: internal/shared/core.go
package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is the minimal public identity: never carries the password hash.
type User struct {
	ID           uuid.UUID
	Email        string
	AuthProvider string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// CreateUserRequest represents a request to create a new user.
type CreateUserRequest struct {
	Email    string
	Password string
}

// TokenResponse represents the response containing JWT tokens.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
}

// Service defines the interface for user-related business logic.
type Service interface {
	// Register creates a credentials account. The password must satisfy the
	// registration policy and the email must be unused.
	Register(ctx context.Context, req CreateUserRequest) (*User, *TokenResponse, error)
	// Login verifies an email/password pair against the store.
	Login(ctx context.Context, email, password string) (*User, *TokenResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// FindOrCreateOrLinkOAuthUser reconciles a provider-verified identity with
	// the store: existing email is accepted as-is, otherwise a passwordless
	// account is created.
	FindOrCreateOrLinkOAuthUser(ctx context.Context, profile OAuthUserProfile) (usr *User, wasCreated bool, err error)
}

// OAuthUserProfile holds profile data asserted by a federated provider.
// It is trusted input: the provider verified the user out-of-band.
type OAuthUserProfile struct {
	Provider      string
	ProviderID    string
	Email         string
	EmailVerified bool
}

// UserDataForToken is an interface to abstract the user data needed for token generation.
type UserDataForToken interface {
	GetID() uuid.UUID
	GetEmail() string
	GetAuthProvider() string
}

// TokenService defines the interface for JWT operations.
type TokenService interface {
	GenerateAccessToken(userData UserDataForToken) (string, time.Time, error)
	GenerateRefreshToken(userData UserDataForToken) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
	ParseRefreshToken(refreshTokenString string) (*Claims, error)
}

// Claims represents the JWT claims structure. Identity fields are copied at
// issuance time and go stale if the user record changes until re-issuance.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Provider string    `json:"provider"`
	jwt.RegisteredClaims
}
