// File: internal/app/pages.go
package app

import (
	"net/http"

	"thrive_backend/internal/common"
	"thrive_backend/internal/config"

	"github.com/gin-gonic/gin"
)

// registerPageRoutes sets up the browser-facing page routes. The route gate
// middleware has already decided whether the caller may see each page, so
// these handlers only describe what the client should render.
func registerPageRoutes(router *gin.Engine, cfg *config.Config) {
	router.GET("/", func(c *gin.Context) {
		// The landing page forwards to wherever the caller belongs.
		if common.HasValidSession(c) {
			c.Redirect(http.StatusTemporaryRedirect, cfg.GateAppHomePath)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, cfg.GateLoginPath)
	})

	router.GET("/login", pageDescriptor("login"))
	router.GET("/signup", pageDescriptor("signup"))
	router.GET("/dashboard", pageDescriptor("dashboard"))
	router.GET("/dashboard/*rest", pageDescriptor("dashboard"))
	router.GET("/spending", pageDescriptor("spending"))
}

// pageDescriptor returns a handler that identifies the page and the session
// state to the client shell.
func pageDescriptor(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"page":          name,
			"path":          c.Request.URL.Path,
			"authenticated": common.HasValidSession(c),
		})
	}
}
