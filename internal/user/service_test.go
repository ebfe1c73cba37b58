// File: internal/user/service_test.go
package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"thrive_backend/internal/common"
	"thrive_backend/internal/config"
	"thrive_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserRepository is an in-memory implementation of the Repository
// interface. It enforces the email unique constraint the way the real
// store does: at insert time.
type fakeUserRepository struct {
	byEmail   map[string]*User
	failFinds bool
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepository) Create(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if _, exists := r.byEmail[user.Email]; exists {
		return common.ErrConflict.WithDetails("An account with this email already exists.")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	if r.failFinds {
		return nil, errors.New("store is down")
	}
	user, exists := r.byEmail[NormalizeEmail(email)]
	if !exists {
		return nil, common.ErrNotFound.WithDetails("User not found.")
	}
	return user, nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("User not found.")
}

func (r *fakeUserRepository) Update(ctx context.Context, user *User) error {
	r.byEmail[user.Email] = user
	return nil
}

// stubTokenService mints fixed tokens so the service tests do not depend on
// JWT machinery.
type stubTokenService struct{}

func (stubTokenService) GenerateAccessToken(userData shared.UserDataForToken) (string, time.Time, error) {
	return "access-" + userData.GetID().String(), time.Now().Add(15 * time.Minute), nil
}

func (stubTokenService) GenerateRefreshToken(userData shared.UserDataForToken) (string, time.Time, error) {
	return "refresh-" + userData.GetID().String(), time.Now().Add(30 * 24 * time.Hour), nil
}

func (stubTokenService) ValidateToken(string) (*shared.Claims, error) {
	return nil, errors.New("not implemented")
}

func (stubTokenService) ParseRefreshToken(string) (*shared.Claims, error) {
	return nil, errors.New("not implemented")
}

func newTestService(repo Repository) *ServiceImplementation {
	cfg := &config.Config{BcryptCost: 4} // low cost keeps the tests fast
	return NewService(repo, stubTokenService{}, cfg, zap.NewNop())
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	registered, tokens, err := svc.Register(ctx, shared.CreateUserRequest{
		Email:    "Casey@Example.com",
		Password: "Abcdefg1!",
	})
	require.NoError(t, err)
	require.NotNil(t, registered)
	require.NotNil(t, tokens)
	assert.Equal(t, "casey@example.com", registered.Email, "email should be normalized")
	assert.Equal(t, common.AuthProviderCredentials, registered.AuthProvider)
	assert.NotEmpty(t, tokens.AccessToken)

	// The stored hash must never be the raw password.
	stored := repo.byEmail["casey@example.com"]
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "Abcdefg1!", *stored.PasswordHash)

	loggedIn, tokens, err := svc.Login(ctx, "casey@example.com", "Abcdefg1!")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
	assert.NotNil(t, loggedIn.LastLoginAt)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), shared.CreateUserRequest{
		Email:    "casey@example.com",
		Password: "abcdefg",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "WEAK_PASSWORD", apiErr.Code)
	assert.Empty(t, repo.byEmail, "store must not be touched for a rejected password")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, shared.CreateUserRequest{Email: "casey@example.com", Password: "Abcdefg1!"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, shared.CreateUserRequest{Email: "casey@example.com", Password: "Other1!pass"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, shared.CreateUserRequest{Email: "casey@example.com", Password: "Abcdefg1!"})
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "Abcdefg1!")
	_, _, wrongPassErr := svc.Login(ctx, "casey@example.com", "WrongPass1!")

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, unknownErr, wrongPassErr, "unknown email and wrong password must present identically")
	assert.True(t, errors.Is(unknownErr, common.ErrInvalidCredentials))
}

func TestLoginFederatedOnlyAccountAlwaysFails(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, created, err := svc.FindOrCreateOrLinkOAuthUser(ctx, shared.OAuthUserProfile{
		Provider:      common.AuthProviderGoogle,
		ProviderID:    "google-sub-1",
		Email:         "casey@example.com",
		EmailVerified: true,
	})
	require.NoError(t, err)
	assert.True(t, created)

	for _, password := range []string{"", "anything", "Abcdefg1!"} {
		_, _, err := svc.Login(ctx, "casey@example.com", password)
		require.Error(t, err, "password %q must not authenticate a passwordless account", password)
		if password != "" {
			assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
		}
	}
}

func TestLoginStoreErrorIsNotInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	repo.failFinds = true
	svc := newTestService(repo)

	_, _, err := svc.Login(context.Background(), "casey@example.com", "Abcdefg1!")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrInvalidCredentials),
		"a store outage must not masquerade as bad credentials")
	assert.True(t, errors.Is(err, common.ErrServiceUnavailable))
}

func TestFederatedSignInLinksExistingAccountByEmail(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, shared.CreateUserRequest{Email: "casey@example.com", Password: "Abcdefg1!"})
	require.NoError(t, err)

	linked, created, err := svc.FindOrCreateOrLinkOAuthUser(ctx, shared.OAuthUserProfile{
		Provider:      common.AuthProviderGoogle,
		ProviderID:    "google-sub-1",
		Email:         "casey@example.com",
		EmailVerified: true,
	})
	require.NoError(t, err)
	assert.False(t, created, "same email must link, not create")
	assert.Equal(t, registered.ID, linked.ID)
	assert.Equal(t, common.AuthProviderGoogle, linked.AuthProvider)

	// The password set at registration still works after linking.
	_, _, err = svc.Login(ctx, "casey@example.com", "Abcdefg1!")
	assert.NoError(t, err)
}
