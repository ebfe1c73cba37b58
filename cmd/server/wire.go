// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"thrive_backend/internal/app"
	"thrive_backend/internal/auth"
	"thrive_backend/internal/config"
	"thrive_backend/internal/finance"
	"thrive_backend/internal/jobs"
	"thrive_backend/internal/platform/database"
	"thrive_backend/internal/platform/logger"
	"thrive_backend/internal/shared"
	"thrive_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Token issuance and revocation
		provideBlocklistConfig,
		auth.NewInMemoryBlocklistService,
		wire.Bind(new(auth.TokenBlocklistService), new(*auth.InMemoryBlocklistService)),
		auth.NewJWTService,

		// Core User Services
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(shared.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(auth.OAuthUserProvider), new(*user.ServiceImplementation)),

		// OAuth
		auth.NewOAuthService,

		// Finance
		finance.NewGORMRepository,
		finance.NewService,
		wire.Bind(new(finance.Service), new(*finance.ServiceImplementation)),

		// Handlers
		auth.NewHandler,
		user.NewHandler,
		finance.NewHandler,

		// Jobs
		jobs.NewNetWorthSnapshotJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
