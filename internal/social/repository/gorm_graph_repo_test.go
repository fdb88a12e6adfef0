package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	contentdomain "github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	m := identitydomain.UserModel{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: "member"}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func TestToggleFollowSymmetry(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormGraphRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	action, err := repo.ToggleFollow(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleCreated, action)

	following, err := repo.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, following)

	// A follow edge is directional.
	reverse, err := repo.IsFollowing(ctx, bob, alice)
	require.NoError(t, err)
	assert.False(t, reverse)

	action, err = repo.ToggleFollow(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleRemoved, action)

	following, err = repo.IsFollowing(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestToggleFollowRejectsSelf(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormGraphRepository(db)

	alice := seedUser(t, db, "alice")
	_, err := repo.ToggleFollow(context.Background(), alice, alice)
	assert.ErrorIs(t, err, ErrSelfEdge)
}

func TestConcurrentFollowsCollapseToSingleEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormGraphRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.ToggleFollow(ctx, alice, bob)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", alice, bob).
		Count(&count).Error)
	assert.LessOrEqual(t, count, int64(1), "unique pair index must prevent duplicate edges")
}

func TestFollowersAndFollowingListings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormGraphRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := repo.ToggleFollow(ctx, bob, alice)
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, carol, alice)
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, alice, bob)
	require.NoError(t, err)

	followers, err := repo.Followers(ctx, alice)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "bob", followers[0].Name)
	assert.Equal(t, "carol", followers[1].Name)

	following, err := repo.Following(ctx, alice)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Name)

	count, err := repo.FollowersCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestToggleCloseFriend(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormGraphRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	action, err := repo.ToggleCloseFriend(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleCreated, action)

	friends, err := repo.CloseFriends(ctx, alice)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob, friends[0].ID)

	// Close friends are one-way too.
	friends, err = repo.CloseFriends(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, friends)

	action, err = repo.ToggleCloseFriend(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleRemoved, action)
}
