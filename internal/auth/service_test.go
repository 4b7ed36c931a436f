package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/velvetcrumb/velvetcrumb-backend/pkg/auth"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/config"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "velvetcrumb-test",
	ExpirationMinutes: 15,
	SessionTTLMinutes: 60,
}

type stubUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
	dupErr  bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role enums.UserRole) error {
	user, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Role = role
	return nil
}

type stubSessions struct {
	live map[string]bool
}

func newStubSessions() *stubSessions {
	return &stubSessions{live: map[string]bool{}}
}

func (s *stubSessions) Generate(_ context.Context, accessID string) error {
	s.live[accessID] = true
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	delete(s.live, accessID)
	return nil
}

func newTestService(t *testing.T, admin config.AdminConfig) (Service, *stubUserRepo, *stubSessions) {
	t.Helper()
	repo := newStubUserRepo()
	sessions := newStubSessions()
	svc, err := NewService(repo, sessions, testJWTConfig, config.PasswordConfig{}, admin, nil)
	require.NoError(t, err)
	return svc, repo, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newTestService(t, config.AdminConfig{})

	created, err := svc.Register(ctx, RegisterInput{
		Email:       "Iris@Example.com",
		Password:    "correct horse",
		DisplayName: "Iris",
	})
	require.NoError(t, err)
	assert.Equal(t, "iris@example.com", created.User.Email)
	assert.Equal(t, enums.UserRoleCustomer, created.User.Role)
	assert.Len(t, sessions.live, 1)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleCustomer, claims.Role)

	logged, err := svc.Login(ctx, LoginInput{Email: "iris@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, logged.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, config.AdminConfig{})

	_, err := svc.Register(ctx, RegisterInput{Email: "", Password: "long enough"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Register(ctx, RegisterInput{Email: "iris@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, config.AdminConfig{})

	_, err := svc.Register(ctx, RegisterInput{
		Email: "iris@example.com", Password: "correct horse", DisplayName: "Iris",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Email: "iris@example.com", Password: "correct horse", DisplayName: "Iris",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, config.AdminConfig{})

	_, err := svc.Register(ctx, RegisterInput{
		Email: "iris@example.com", Password: "correct horse", DisplayName: "Iris",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "iris@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestAllowListPromotion(t *testing.T) {
	ctx := context.Background()
	admin := config.AdminConfig{AllowedEmails: []string{"owner@velvetcrumb.test"}}

	// allow-listed at registration time
	svc, repo, _ := newTestService(t, admin)
	created, err := svc.Register(ctx, RegisterInput{
		Email: "owner@velvetcrumb.test", Password: "correct horse", DisplayName: "Owner",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, created.User.Role)

	// demote directly, then confirm login promotes again
	repo.byID[created.User.ID].Role = enums.UserRoleCustomer

	logged, err := svc.Login(ctx, LoginInput{Email: "owner@velvetcrumb.test", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, logged.User.Role)
	assert.Equal(t, enums.UserRoleAdmin, repo.byID[created.User.ID].Role)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newTestService(t, config.AdminConfig{})

	created, err := svc.Register(ctx, RegisterInput{
		Email: "iris@example.com", Password: "correct horse", DisplayName: "Iris",
	})
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, created.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.ID))
	assert.Empty(t, sessions.live)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, config.AdminConfig{})

	created, err := svc.Register(ctx, RegisterInput{
		Email: "iris@example.com", Password: "correct horse", DisplayName: "Iris",
	})
	require.NoError(t, err)

	profile, err := svc.Me(ctx, created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Iris", profile.DisplayName)

	_, err = svc.Me(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
