// File: internal/auth/interfaces.go
package auth

import (
	"context"

	"thrive_backend/internal/shared"

	"github.com/google/uuid"
)

// OAuthUserProvider defines the user operations needed by the OAuthService.
// This interface is implemented by user.ServiceImplementation.
type OAuthUserProvider interface {
	FindOrCreateOrLinkOAuthUser(ctx context.Context, profile shared.OAuthUserProfile) (usr *shared.User, wasCreated bool, err error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error)
}

// sharedUserTokenData adapts shared.User to shared.UserDataForToken where a
// token must be minted for an identity that already left the user package.
type sharedUserTokenData struct {
	u *shared.User
}

func (d sharedUserTokenData) GetID() uuid.UUID        { return d.u.ID }
func (d sharedUserTokenData) GetEmail() string        { return d.u.Email }
func (d sharedUserTokenData) GetAuthProvider() string { return d.u.AuthProvider }
