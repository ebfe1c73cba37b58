// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"thrive_backend/internal/auth"
	"thrive_backend/internal/config"
	"thrive_backend/internal/finance"
	"thrive_backend/internal/gate"
	"thrive_backend/internal/jobs"
	"thrive_backend/internal/middleware"
	"thrive_backend/internal/shared"
	"thrive_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	snapshotJob *jobs.NetWorthSnapshotJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService shared.TokenService,
	userHandler *user.Handler,
	authHandler *auth.Handler,
	financeHandler *finance.Handler,
	snapshotJob *jobs.NetWorthSnapshotJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Session resolution runs on every request so both the route gate and
	// the API guard see the same answer.
	router.Use(middleware.Session(tokenService, cfg, logger.Named("Session")))

	routeGate := gate.New(gate.Config{
		ProtectedPrefixes: cfg.GateProtected(),
		AuthPagePrefixes:  cfg.GateAuthPages(),
		ExcludedPrefixes:  cfg.GateExcluded(),
		LoginPath:         cfg.GateLoginPath,
		AppHomePath:       cfg.GateAppHomePath,
	})
	router.Use(middleware.RouteGate(routeGate, logger.Named("RouteGate")))

	authMW := middleware.RequireAuth(logger.Named("RequireAuth"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Thrive API is healthy!"})
	})

	registerPageRoutes(router, cfg)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, authMW)
	userHandler.RegisterRoutes(v1, authMW)
	financeHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:  httpServer,
		router:      router,
		cfg:         cfg,
		logger:      logger,
		snapshotJob: snapshotJob,
	}, nil
}

func (s *Server) Start() error {
	if s.snapshotJob != nil {
		if err := s.snapshotJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start net worth snapshot job", zap.Error(err))
		}
	} else {
		s.logger.Info("Net worth snapshot job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.snapshotJob != nil {
		s.snapshotJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
