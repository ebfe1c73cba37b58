// File: internal/user/adapter.go
package user

import (
	"time"

	"thrive_backend/internal/common"
	"thrive_backend/internal/shared"

	"github.com/google/uuid"
)

// DBToShared converts a GORM user.User model to a shared.User DTO.
// The password hash never crosses this boundary.
func DBToShared(dbUser *User) *shared.User {
	if dbUser == nil {
		return nil
	}
	return &shared.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		AuthProvider: dbUser.AuthProvider,
		Role:         dbUser.Role,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
		LastLoginAt:  dbUser.LastLoginAt,
	}
}

// CreateRequestToDB builds the GORM model for a new credentials account.
func CreateRequestToDB(req *shared.CreateUserRequest, passwordHash string) *User {
	now := time.Now()
	return &User{
		BaseModel: common.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: &passwordHash,
		AuthProvider: common.AuthProviderCredentials,
		Role:         common.RoleUser,
	}
}
