// File: internal/user/model.go
package user

import (
	"time"

	"thrive_backend/internal/common"
	"thrive_backend/internal/shared"

	"github.com/google/uuid"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel         // Embeds ID, CreatedAt, UpdatedAt
	Email            string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     *string `gorm:"type:varchar(255)"` // NULL marks "no password set" (federated-only account)
	AuthProvider     string  `gorm:"type:varchar(50);not null;default:'credentials'"`
	Role             string  `gorm:"type:varchar(50);not null;default:'user'"`
	LastLoginAt      *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// CreateUserRequest defines the structure for creating a new user.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"` // bcrypt max is 72 bytes
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	AuthProvider string     `json:"auth_provider"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a shared.User to a UserResponse DTO.
func ToUserResponse(user *shared.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		AuthProvider: user.AuthProvider,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		LastLoginAt:  user.LastLoginAt,
	}
}

// shared.UserDataForToken implementation, used at token issuance.

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetAuthProvider() string {
	return u.AuthProvider
}
