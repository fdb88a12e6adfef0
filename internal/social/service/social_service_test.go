package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	contentdomain "github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	identityrepo "github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/repository"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/store"
)

// fakeCountStore is an in-memory CountStore recording its traffic.
type fakeCountStore struct {
	counts map[uint]int64
	gets   int
	sets   int
}

var _ store.CountStore = (*fakeCountStore)(nil)

func newFakeCountStore() *fakeCountStore {
	return &fakeCountStore{counts: make(map[uint]int64)}
}

func (f *fakeCountStore) GetFollowersCount(ctx context.Context, userID uint) (int64, bool, error) {
	f.gets++
	count, ok := f.counts[userID]
	return count, ok, nil
}

func (f *fakeCountStore) SetFollowersCount(ctx context.Context, userID uint, count int64) error {
	f.sets++
	f.counts[userID] = count
	return nil
}

func (f *fakeCountStore) InvalidateFollowersCount(ctx context.Context, userID uint) error {
	delete(f.counts, userID)
	return nil
}

func (f *fakeCountStore) Close() error { return nil }

func setupService(t *testing.T, counts store.CountStore) (SocialService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identitydomain.UserModel{},
		&contentdomain.PostModel{},
		&domain.FollowModel{},
		&domain.CloseFriendModel{},
	))
	svc := NewSocialService(repository.NewGormGraphRepository(db), identityrepo.NewGormUserRepository(db), counts)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	m := identitydomain.UserModel{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: "member"}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func TestToggleFollowValidation(t *testing.T) {
	svc, db := setupService(t, nil)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	_, err := svc.ToggleFollow(ctx, alice, alice)
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = svc.ToggleFollow(ctx, alice, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowersCountWithoutCacheHitsDatabase(t *testing.T) {
	svc, db := setupService(t, nil)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.ToggleFollow(ctx, bob, alice)
	require.NoError(t, err)

	count, err := svc.FollowersCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowersCountCacheAside(t *testing.T) {
	counts := newFakeCountStore()
	svc, db := setupService(t, counts)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := svc.ToggleFollow(ctx, bob, alice)
	require.NoError(t, err)

	// First read misses and populates the cache.
	count, err := svc.FollowersCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, counts.sets)

	// Second read is served from the cache.
	count, err = svc.FollowersCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, counts.sets)

	// A toggle invalidates; the next read recomputes.
	_, err = svc.ToggleFollow(ctx, carol, alice)
	require.NoError(t, err)
	count, err = svc.FollowersCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 2, counts.sets)
}

func TestFollowerListings(t *testing.T) {
	svc, db := setupService(t, nil)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.ToggleFollow(ctx, bob, alice)
	require.NoError(t, err)

	followers, err := svc.Followers(ctx, alice)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "bob", followers[0].Name)
	assert.Equal(t, identitydomain.PlaceholderAvatar(bob), followers[0].ProfilePicture)

	_, err = svc.Followers(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
