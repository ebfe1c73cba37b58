// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for storing the authenticated user's ID
	UserIDKey = "userID"
	// UserEmailKey is the context key for storing the authenticated user's email
	UserEmailKey = "userEmail"
	// UserProviderKey is the context key for storing how the session was authenticated
	UserProviderKey = "userProvider"
	// SessionValidKey is the context key set by the session middleware when the
	// request carried a verifiable session token
	SessionValidKey = "sessionValid"
)
