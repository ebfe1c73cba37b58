// File: cmd/server/providers.go
package main

import (
	"log"
	"time"

	"thrive_backend/internal/auth"
	"thrive_backend/internal/config"
	"thrive_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideBlocklistConfig sizes the revoked-token cache. Entries only need to
// outlive the longest-lived token, which is the refresh token.
func provideBlocklistConfig(cfg *config.Config) auth.InMemoryBlocklistConfig {
	return auth.InMemoryBlocklistConfig{
		DefaultExpiration: cfg.JWTRefreshTokenExpiryDays,
		CleanupInterval:   10 * time.Minute,
	}
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
