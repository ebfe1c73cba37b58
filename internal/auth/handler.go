// File: internal/auth/handler.go
package auth

import (
	"errors"
	"net/http"
	"time"

	"thrive_backend/internal/common"
	"thrive_backend/internal/config"
	"thrive_backend/internal/shared"
	"thrive_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	cfg          *config.Config
	userService  shared.Service
	tokenService shared.TokenService
	oauthService OAuthService
	blocklist    TokenBlocklistService
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(
	cfg *config.Config,
	userService shared.Service,
	tokenService shared.TokenService,
	oauthService OAuthService,
	blocklist TokenBlocklistService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:          cfg,
		userService:  userService,
		tokenService: tokenService,
		oauthService: oauthService,
		blocklist:    blocklist,
		logger:       logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
// Routes needing an authenticated caller take the auth middleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/refresh-token", h.refreshToken)
		authGroup.POST("/logout", authMW, h.logout)
		authGroup.GET("/me", authMW, h.getMe)
		authGroup.GET("/google/login", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	loggedInUser, tokenResponse, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.setSession(c, tokenResponse)
	response := gin.H{
		"user":  user.ToUserResponse(loggedInUser),
		"token": tokenResponse,
	}
	common.RespondOK(c, "Login successful.", response)
}

func (h *Handler) refreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Refresh token: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	claims, err := h.tokenService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		h.logger.Warn("Refresh token validation failed", zap.Error(err))
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired refresh token."))
		return
	}

	u, err := h.userService.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("User not found for valid refresh token claims",
			zap.String("userID", claims.UserID.String()), zap.Error(err))
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User associated with refresh token not found."))
		return
	}

	newAccessToken, newAccessExpiresAt, err := h.tokenService.GenerateAccessToken(sharedUserTokenData{u})
	if err != nil {
		h.logger.Error("Failed to generate new access token during refresh", zap.Error(err), zap.String("userID", u.ID.String()))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not generate new access token."))
		return
	}

	newTokenResponse := &shared.TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    newAccessExpiresAt,
	}
	h.setSession(c, newTokenResponse)
	common.RespondOK(c, "Token refreshed successfully.", newTokenResponse)
}

// logout revokes the presented access token and clears the session cookie.
func (h *Handler) logout(c *gin.Context) {
	ClearSessionCookie(c, h.cfg)

	tokenString := common.GetTokenFromContext(c)
	if tokenString == "" {
		// Session came from the cookie; the auth middleware already verified it.
		if cookie, err := c.Request.Cookie(h.cfg.SessionCookieName); err == nil {
			tokenString = cookie.Value
		}
	}
	if tokenString != "" {
		if claims, err := h.tokenService.ValidateToken(tokenString); err == nil && claims.ID != "" {
			if err := h.blocklist.AddToBlocklist(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				h.logger.Error("Failed to blocklist token on logout", zap.Error(err))
			}
		}
	}

	common.RespondOK(c, "Logged out.", nil)
}

// getMe returns the profile behind the current session token.
func (h *Handler) getMe(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	u, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", user.ToUserResponse(u))
}

func (h *Handler) googleLogin(c *gin.Context) {
	authURL, err := h.oauthService.GetGoogleLoginURL(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if errorParam := c.Query("error"); errorParam != "" {
		errorDesc := c.Query("error_description")
		h.logger.Warn("Google OAuth callback error", zap.String("error", errorParam), zap.String("description", errorDesc))
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Google login failed: "+errorDesc))
		return
	}

	if code == "" || state == "" {
		h.logger.Warn("Google callback missing code or state")
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing authorization code or state from Google."))
		return
	}

	appUser, tokenResponse, err := h.oauthService.HandleGoogleCallback(c, code, state)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.setSession(c, tokenResponse)
	response := gin.H{
		"user":  user.ToUserResponse(appUser),
		"token": tokenResponse,
	}
	common.RespondOK(c, "Google login processed successfully.", response)
}

// setSession mirrors the access token into the browser session cookie so the
// route gate can classify subsequent page navigations.
func (h *Handler) setSession(c *gin.Context, tokenResponse *shared.TokenResponse) {
	maxAge := int(time.Until(tokenResponse.ExpiresAt).Seconds())
	SetSessionCookie(c, h.cfg, tokenResponse.AccessToken, maxAge)
}
