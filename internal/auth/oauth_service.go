// File: internal/auth/oauth_service.go
package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"thrive_backend/internal/common"
	"thrive_backend/internal/config"
	"thrive_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// OAuthService drives the Google sign-in flow: redirect URL generation with a
// CSRF state cookie, code exchange, and reconciliation of the provider-asserted
// identity with the credential store.
type OAuthService interface {
	GetGoogleLoginURL(c *gin.Context) (string, error)
	HandleGoogleCallback(c *gin.Context, code string, state string) (*shared.User, *shared.TokenResponse, error)
}

type oauthService struct {
	cfg               *config.Config
	oauthUserProvider OAuthUserProvider
	tokenService      shared.TokenService
	logger            *zap.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(
	cfg *config.Config,
	oauthUserProvider OAuthUserProvider,
	tokenService shared.TokenService,
	logger *zap.Logger,
) OAuthService {
	return &oauthService{
		cfg:               cfg,
		oauthUserProvider: oauthUserProvider,
		tokenService:      tokenService,
		logger:            logger.Named("OAuthService"),
	}
}

// GetGoogleLoginURL generates the URL for Google OAuth login.
func (s *oauthService) GetGoogleLoginURL(c *gin.Context) (string, error) {
	state, err := generateAndSetOAuthState(c, s.cfg)
	if err != nil {
		s.logger.Error("Failed to generate OAuth state for Google", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not initiate Google login.")
	}
	googleCfg := getGoogleOAuthConfig(s.cfg)
	authURL := googleCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	return authURL, nil
}

// HandleGoogleCallback processes the callback from Google. Google has already
// verified the user out-of-band; any failure from here on denies the sign-in.
func (s *oauthService) HandleGoogleCallback(c *gin.Context, code string, state string) (*shared.User, *shared.TokenResponse, error) {
	storedState, err := getOAuthCookie(c, s.cfg, s.cfg.OAuthStateCookieName)
	if err != nil {
		s.logger.Warn("Missing OAuth state cookie on Google callback", zap.Error(err))
		return nil, nil, common.ErrBadRequest.WithDetails("Invalid session or state mismatch.")
	}
	if state != storedState {
		s.logger.Warn("Google OAuth state mismatch")
		return nil, nil, common.ErrBadRequest.WithDetails("OAuth state mismatch.")
	}

	googleCfg := getGoogleOAuthConfig(s.cfg)
	ctx := c.Request.Context()

	token, err := googleCfg.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("Failed to exchange Google auth code for token", zap.Error(err))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not exchange Google auth code.")
	}
	if !token.Valid() {
		s.logger.Error("Google token received is invalid")
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Received invalid token from Google.")
	}

	client := googleCfg.Client(ctx, token)
	userInfoResp, err := client.Get(googleUserInfoURL)
	if err != nil {
		s.logger.Error("Failed to fetch user info from Google", zap.Error(err))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not fetch user info from Google.")
	}
	defer userInfoResp.Body.Close()

	if userInfoResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(userInfoResp.Body)
		s.logger.Error("Google user info request failed",
			zap.Int("status", userInfoResp.StatusCode), zap.String("body", string(bodyBytes)))
		return nil, nil, common.ErrServiceUnavailable.WithDetails(
			fmt.Sprintf("Google returned status %d for user info.", userInfoResp.StatusCode))
	}

	var googleUser struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := json.NewDecoder(userInfoResp.Body).Decode(&googleUser); err != nil {
		s.logger.Error("Failed to decode Google user info", zap.Error(err))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not decode Google user info.")
	}

	if googleUser.Email == "" || !googleUser.EmailVerified {
		s.logger.Warn("Google profile has no verified email", zap.String("sub", googleUser.Sub))
		return nil, nil, common.ErrUnauthorized.WithDetails("Google account has no verified email.")
	}

	profile := shared.OAuthUserProfile{
		Provider:      common.AuthProviderGoogle,
		ProviderID:    googleUser.Sub,
		Email:         googleUser.Email,
		EmailVerified: googleUser.EmailVerified,
	}

	appUser, wasCreated, err := s.oauthUserProvider.FindOrCreateOrLinkOAuthUser(ctx, profile)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("Google sign-in reconciled",
		zap.String("userID", appUser.ID.String()), zap.Bool("wasCreated", wasCreated))

	accessToken, accessExpiresAt, err := s.tokenService.GenerateAccessToken(sharedUserTokenData{appUser})
	if err != nil {
		s.logger.Error("Failed to generate access token after Google sign-in", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not establish a session.")
	}
	refreshToken, _, err := s.tokenService.GenerateRefreshToken(sharedUserTokenData{appUser})
	if err != nil {
		s.logger.Error("Failed to generate refresh token after Google sign-in", zap.Error(err))
	}

	return appUser, &shared.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    accessExpiresAt,
	}, nil
}
