package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	contentdomain "github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	"github.com/fidel-otieno2/KinKeep.app/pkg/jwt"
)

func setupService(t *testing.T) IdentityService {
	return setupServiceWith(t, nil)
}

func setupServiceWith(t *testing.T, followers FollowerCounter) IdentityService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.UserModel{},
		&socialdomain.FollowModel{},
		&contentdomain.PostModel{},
	))
	tokens := jwt.NewManager("test-secret", time.Hour, 24*time.Hour, "test")
	return NewIdentityService(repository.NewGormUserRepository(db), tokens, followers)
}

func TestRegisterAllowsDuplicateEmails(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ana", Email: "shared@example.com", Password: "password1"})
	require.NoError(t, err)
	second, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ben", Email: "shared@example.com", Password: "password2"})
	require.NoError(t, err)

	assert.NotEqual(t, first.User.ID, second.User.ID)
	assert.NotEmpty(t, first.AccessToken)
	assert.NotEmpty(t, first.RefreshToken)
}

func TestLoginScansAllAccountsUnderEmail(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ana", Email: "shared@example.com", Password: "anapass1"})
	require.NoError(t, err)
	ben, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ben", Email: "shared@example.com", Password: "benpass1"})
	require.NoError(t, err)

	// The password decides which of the shared-email accounts logs in.
	got, err := svc.Login(ctx, &domain.LoginRequest{Email: "shared@example.com", Password: "benpass1"})
	require.NoError(t, err)
	assert.Equal(t, ben.User.ID, got.User.ID)

	got, err = svc.Login(ctx, &domain.LoginRequest{Email: "shared@example.com", Password: "anapass1"})
	require.NoError(t, err)
	assert.Equal(t, ana.User.ID, got.User.ID)

	_, err = svc.Login(ctx, &domain.LoginRequest{Email: "shared@example.com", Password: "nobody"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "missing@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, &domain.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted in the refresh slot.
	_, err = svc.RefreshToken(ctx, &domain.RefreshTokenRequest{RefreshToken: registered.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "oldpass1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, registered.User.ID, &domain.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpass1",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(ctx, registered.User.ID, &domain.ChangePasswordRequest{
		CurrentPassword: "oldpass1",
		NewPassword:     "newpass1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &domain.LoginRequest{Email: "ana@example.com", Password: "newpass1"})
	require.NoError(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password1"})
	require.NoError(t, err)

	bio := "family archivist"
	updated, err := svc.UpdateProfile(ctx, registered.User.ID, &domain.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "family archivist", updated.Bio)
	assert.Equal(t, "Ana", updated.Name, "omitted fields stay untouched")
}

type stubFollowerCounter struct{ count int64 }

func (c *stubFollowerCounter) FollowersCount(context.Context, uint) (int64, error) {
	return c.count, nil
}

func TestUserViewFollowersCountServedByCounter(t *testing.T) {
	svc := setupServiceWith(t, &stubFollowerCounter{count: 7})
	ctx := context.Background()

	registered, err := svc.Register(ctx, &domain.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password1"})
	require.NoError(t, err)

	view, err := svc.GetUser(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), view.FollowersCount, "followers come from the counter, not the raw table")
}

func TestUserViewFallsBackToPlaceholderAvatar(t *testing.T) {
	u := domain.User{ID: 42, Name: "Ana"}
	assert.Equal(t, "https://picsum.photos/seed/42/150/150", u.AvatarOrPlaceholder())

	u.ProfileImage = "https://cdn.example.com/ana.jpg"
	assert.Equal(t, "https://cdn.example.com/ana.jpg", u.AvatarOrPlaceholder())
}
