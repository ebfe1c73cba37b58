// File: internal/middleware/gate.go
package middleware

import (
	"net/http"

	"thrive_backend/internal/common"
	"thrive_backend/internal/gate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteGate intercepts every page navigation before route dispatch and
// applies the gate's decision table. It must run after the Session middleware
// and performs no I/O: session validity was already established and excluded
// paths (assets, the API itself) bypass evaluation entirely.
func RouteGate(g *gate.Gate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if g.Excluded(path) {
			c.Next()
			return
		}

		decision := g.Decide(path, common.HasValidSession(c))
		if decision.Action == gate.Allow {
			c.Next()
			return
		}

		logger.Debug("Route gate redirect",
			zap.String("path", path),
			zap.String("action", decision.Action.String()),
			zap.String("target", decision.Target),
		)
		c.Redirect(http.StatusTemporaryRedirect, decision.Target)
		c.Abort()
	}
}
