// File: internal/auth/service_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"thrive_backend/internal/common"
	"thrive_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tokenUser struct {
	id    uuid.UUID
	email string
}

func (u tokenUser) GetID() uuid.UUID        { return u.id }
func (u tokenUser) GetEmail() string        { return u.email }
func (u tokenUser) GetAuthProvider() string { return common.AuthProviderCredentials }

func newTestJWTService(accessTTL time.Duration) (*JWTService, *InMemoryBlocklistService) {
	cfg := &config.Config{
		JWTSecretKey:                "test-secret-key-for-signing",
		JWTAccessTokenExpiryMinutes: accessTTL,
		JWTRefreshTokenExpiryDays:   24 * time.Hour,
	}
	blocklist := NewInMemoryBlocklistService(InMemoryBlocklistConfig{
		DefaultExpiration: time.Hour,
		CleanupInterval:   time.Hour,
	})
	svc := NewJWTService(cfg, blocklist, zap.NewNop()).(*JWTService)
	return svc, blocklist
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, _ := newTestJWTService(15 * time.Minute)
	usr := tokenUser{id: uuid.New(), email: "casey@example.com"}

	tokenString, expiresAt, err := svc.GenerateAccessToken(usr)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, usr.id, claims.UserID)
	assert.Equal(t, "casey@example.com", claims.Email)
	assert.Equal(t, common.AuthProviderCredentials, claims.Provider)
	assert.NotEmpty(t, claims.ID, "every token carries a JTI for revocation")
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc, _ := newTestJWTService(-time.Minute)
	usr := tokenUser{id: uuid.New(), email: "casey@example.com"}

	tokenString, _, err := svc.GenerateAccessToken(usr)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	svc, _ := newTestJWTService(15 * time.Minute)
	other, _ := newTestJWTService(15 * time.Minute)
	other.cfg.JWTSecretKey = "a-different-secret-key"

	tokenString, _, err := other.GenerateAccessToken(tokenUser{id: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateTokenRejectsRevoked(t *testing.T) {
	svc, blocklist := newTestJWTService(15 * time.Minute)
	usr := tokenUser{id: uuid.New(), email: "casey@example.com"}

	tokenString, expiresAt, err := svc.GenerateAccessToken(usr)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)

	require.NoError(t, blocklist.AddToBlocklist(context.Background(), claims.ID, expiresAt))

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err, "revoked token must not validate")
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newTestJWTService(15 * time.Minute)
	usr := tokenUser{id: uuid.New(), email: "casey@example.com"}

	accessToken, _, err := svc.GenerateAccessToken(usr)
	require.NoError(t, err)
	refreshToken, _, err := svc.GenerateRefreshToken(usr)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(accessToken)
	assert.Error(t, err, "access token must not pass as a refresh token")

	claims, err := svc.ParseRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, usr.id, claims.UserID)
}

func TestBlocklistExpiredEntryIsNoop(t *testing.T) {
	_, blocklist := newTestJWTService(15 * time.Minute)
	ctx := context.Background()

	require.NoError(t, blocklist.AddToBlocklist(ctx, "jti-already-expired", time.Now().Add(-time.Minute)))

	blocked, err := blocklist.IsBlocklisted(ctx, "jti-already-expired")
	require.NoError(t, err)
	assert.False(t, blocked, "an already-expired token needs no blocklist entry")
}
