// File: internal/middleware/session.go
package middleware

import (
	"thrive_backend/internal/common"
	"thrive_backend/internal/config"
	"thrive_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Session resolves the caller's session once per request, before the route
// gate and any handler. It looks for a Bearer token first (API clients), then
// the session cookie (browser navigation). A missing, expired, malformed or
// revoked token leaves the request unauthenticated; it never rejects the
// request itself — that is the gate's and RequireAuth's job.
func Session(tokenService shared.TokenService, cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			if cookie, err := c.Request.Cookie(cfg.SessionCookieName); err == nil {
				tokenString = cookie.Value
			}
		}
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			// Fail closed: an unverifiable token is the same as no token.
			logger.Debug("Session token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		c.Set(common.SessionValidKey, true)
		c.Set(common.UserIDKey, claims.UserID)
		c.Set(common.UserEmailKey, claims.Email)
		c.Set(common.UserProviderKey, claims.Provider)
		c.Next()
	}
}

// RequireAuth guards API routes: the Session middleware must have verified a
// token earlier in the chain, otherwise the request is rejected with 401.
func RequireAuth(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !common.HasValidSession(c) {
			logger.Debug("Rejecting unauthenticated API request", zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("A valid session token is required."))
			return
		}
		c.Next()
	}
}
