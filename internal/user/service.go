// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"time"

	"thrive_backend/internal/common"
	"thrive_backend/internal/config"
	"thrive_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceImplementation implements the shared.Service interface.
type ServiceImplementation struct {
	repo         Repository
	tokenService shared.TokenService
	cfg          *config.Config
	logger       *zap.Logger
}

var _ shared.Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	tokenService shared.TokenService,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:         repo,
		tokenService: tokenService,
		cfg:          cfg,
		logger:       logger,
	}
}

// Register creates a credentials account. The password policy runs first so
// the store is never touched for a rejected password. Uniqueness is left to
// the store's constraint; the repository maps a duplicate to common.ErrConflict.
func (s *ServiceImplementation) Register(ctx context.Context, req shared.CreateUserRequest) (*shared.User, *shared.TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, nil, common.ErrBadRequest.WithDetails("Email and password are required.")
	}

	if unmet := ValidatePassword(req.Password); len(unmet) > 0 {
		s.logger.Debug("Registration rejected by password policy",
			zap.String("email", req.Email), zap.Int("unmet_requirements", len(unmet)))
		return nil, nil, NewWeakPasswordError(unmet)
	}

	hashedPassword, err := common.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, nil, common.ErrInternalServer
	}

	dbUser := CreateRequestToDB(&req, hashedPassword)

	if err := s.repo.Create(ctx, dbUser); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, nil, apiErr
		}
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", req.Email))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not create the account. Please try again.")
	}

	tokenResponse, err := s.issueTokens(dbUser)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", dbUser.ID.String()))
	return DBToShared(dbUser), tokenResponse, nil
}

// Login is a pure query of the credential store: lookup by email, then bcrypt
// comparison. A lookup miss and a password mismatch present identically to the
// caller; only the server-side log distinguishes them.
func (s *ServiceImplementation) Login(ctx context.Context, email, password string) (*shared.User, *shared.TokenResponse, error) {
	if email == "" || password == "" {
		return nil, nil, common.ErrBadRequest.WithDetails("Email and password are required.")
	}

	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info("Login failed: user not found", zap.String("email", email))
			return nil, nil, common.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: credential store unavailable", zap.Error(err), zap.String("email", email))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Please try again later.")
	}

	if dbUser.PasswordHash == nil || *dbUser.PasswordHash == "" {
		// Federated-only account: no password is set and none can match.
		s.logger.Info("Login failed: account has no password set",
			zap.String("userID", dbUser.ID.String()), zap.String("provider", dbUser.AuthProvider))
		return nil, nil, common.ErrInvalidCredentials
	}

	if !common.CheckPasswordHash(password, *dbUser.PasswordHash) {
		s.logger.Info("Login failed: password mismatch", zap.String("userID", dbUser.ID.String()))
		return nil, nil, common.ErrInvalidCredentials
	}

	now := time.Now()
	dbUser.LastLoginAt = &now
	if err := s.repo.Update(ctx, dbUser); err != nil {
		// Not critical for authentication, log and proceed.
		s.logger.Error("Failed to update last login time", zap.Error(err), zap.String("userID", dbUser.ID.String()))
	}

	tokenResponse, err := s.issueTokens(dbUser)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User logged in successfully", zap.String("userID", dbUser.ID.String()))
	return DBToShared(dbUser), tokenResponse, nil
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

func (s *ServiceImplementation) GetUserByEmail(ctx context.Context, email string) (*shared.User, error) {
	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// FindOrCreateOrLinkOAuthUser reconciles a provider-verified identity with the
// store. An existing account with the same email is accepted as-is, whatever
// provider created it: linking is by email. A missing account is created with
// no password hash, so it can never pass Login. Any store failure denies the
// sign-in.
func (s *ServiceImplementation) FindOrCreateOrLinkOAuthUser(ctx context.Context, profile shared.OAuthUserProfile) (*shared.User, bool, error) {
	s.logger.Info("Processing OAuth sign-in",
		zap.String("provider", profile.Provider),
		zap.String("email", profile.Email),
	)

	dbUser, err := s.repo.FindByEmail(ctx, profile.Email)
	if err == nil {
		now := time.Now()
		dbUser.AuthProvider = profile.Provider
		dbUser.LastLoginAt = &now
		if err := s.repo.Update(ctx, dbUser); err != nil {
			s.logger.Error("Failed to record federated sign-in on existing user",
				zap.Error(err), zap.String("userID", dbUser.ID.String()))
			return nil, false, common.ErrServiceUnavailable.WithDetails("Sign-in could not be completed.")
		}
		s.logger.Info("Federated identity linked to existing account by email",
			zap.String("userID", dbUser.ID.String()), zap.String("provider", profile.Provider))
		return DBToShared(dbUser), false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Credential store unavailable during federated sign-in", zap.Error(err))
		return nil, false, common.ErrServiceUnavailable.WithDetails("Sign-in could not be completed.")
	}

	now := time.Now()
	dbNewUser := &User{
		BaseModel: common.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        NormalizeEmail(profile.Email),
		PasswordHash: nil, // no password set; the password path must never accept this account
		AuthProvider: profile.Provider,
		Role:         common.RoleUser,
		LastLoginAt:  &now,
	}

	if err := s.repo.Create(ctx, dbNewUser); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			// Lost a race against a concurrent registration; deny this attempt.
			return nil, false, apiErr
		}
		s.logger.Error("Failed to create federated user", zap.Error(err), zap.String("email", profile.Email))
		return nil, false, common.ErrServiceUnavailable.WithDetails("Sign-in could not be completed.")
	}

	s.logger.Info("New federated user created", zap.String("userID", dbNewUser.ID.String()),
		zap.String("provider", profile.Provider))
	return DBToShared(dbNewUser), true, nil
}

func (s *ServiceImplementation) issueTokens(dbUser *User) (*shared.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.tokenService.GenerateAccessToken(dbUser)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err), zap.String("userID", dbUser.ID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not establish a session.")
	}

	refreshToken, _, err := s.tokenService.GenerateRefreshToken(dbUser)
	if err != nil {
		// Proceed without a refresh token; the access token alone is a valid session.
		s.logger.Error("Failed to generate refresh token", zap.Error(err), zap.String("userID", dbUser.ID.String()))
	}

	return &shared.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    accessExpiresAt,
	}, nil
}
