// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"thrive_backend/internal/config"
	"thrive_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	accessTokenIssuer  = "thrive_backend"
	refreshTokenIssuer = "thrive_backend_refresh"
)

// JWTService signs and verifies session tokens. It is the only component
// that touches the signing key; everything else treats tokens as opaque.
type JWTService struct {
	cfg       *config.Config
	blocklist TokenBlocklistService
	logger    *zap.Logger
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg *config.Config, blocklist TokenBlocklistService, logger *zap.Logger) shared.TokenService {
	return &JWTService{cfg: cfg, blocklist: blocklist, logger: logger}
}

func (s *JWTService) GenerateAccessToken(userData shared.UserDataForToken) (string, time.Time, error) {
	return s.generate(userData, accessTokenIssuer, s.cfg.JWTAccessTokenExpiryMinutes)
}

func (s *JWTService) GenerateRefreshToken(userData shared.UserDataForToken) (string, time.Time, error) {
	return s.generate(userData, refreshTokenIssuer, s.cfg.JWTRefreshTokenExpiryDays)
}

func (s *JWTService) generate(userData shared.UserDataForToken, issuer string, ttl time.Duration) (string, time.Time, error) {
	expirationTime := time.Now().Add(ttl)

	claims := &shared.Claims{
		UserID:   userData.GetID(),
		Email:    userData.GetEmail(),
		Provider: userData.GetAuthProvider(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   userData.GetID().String(),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		s.logger.Error("Failed to sign token", zap.String("issuer", issuer), zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// ValidateToken verifies signature, expiry and blocklist status. Any failure
// means "no session": callers must not distinguish between malformed, expired
// and revoked tokens.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		s.logger.Debug("Token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	if s.blocklist != nil && claims.ID != "" {
		blocked, err := s.blocklist.IsBlocklisted(context.Background(), claims.ID)
		if err != nil {
			s.logger.Error("Blocklist lookup failed, failing closed", zap.Error(err))
			return nil, fmt.Errorf("could not verify token status: %w", err)
		}
		if blocked {
			return nil, errors.New("token has been revoked")
		}
	}

	return claims, nil
}

func (s *JWTService) ParseRefreshToken(refreshTokenString string) (*shared.Claims, error) {
	claims, err := s.ValidateToken(refreshTokenString)
	if err != nil {
		return nil, err
	}
	if claims.Issuer != refreshTokenIssuer {
		return nil, errors.New("token is not a refresh token")
	}
	return claims, nil
}
