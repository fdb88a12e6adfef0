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

	"github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/content/repository"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	identityrepo "github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	socialrepo "github.com/fidel-otieno2/KinKeep.app/internal/social/repository"
)

func setupService(t *testing.T) (ContentService, *socialrepo.GormGraphRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identitydomain.UserModel{},
		&socialdomain.FollowModel{},
		&socialdomain.CloseFriendModel{},
		&domain.PostModel{},
		&domain.LikeModel{},
		&domain.SavedPostModel{},
		&domain.PostCommentModel{},
	))
	svc := NewContentService(repository.NewGormPostRepository(db), identityrepo.NewGormUserRepository(db))
	return svc, socialrepo.NewGormGraphRepository(db), db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	m := identitydomain.UserModel{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: "member"}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func TestCreatePostDefaultsAndStoryExpiry(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	post, err := svc.CreatePost(ctx, alice, &domain.CreatePostRequest{Caption: "hello"})
	require.NoError(t, err)
	assert.Equal(t, domain.PostKindPost, post.Kind)
	assert.Nil(t, post.ExpiresAt)
	assert.Equal(t, domain.VisibilityPublic, post.Visibility)

	before := time.Now().UTC()
	story, err := svc.CreatePost(ctx, alice, &domain.CreatePostRequest{Kind: "story", Caption: "a day"})
	require.NoError(t, err)
	require.NotNil(t, story.ExpiresAt)
	lifetime := story.ExpiresAt.Sub(before)
	assert.InDelta(t, float64(24*time.Hour), float64(lifetime), float64(time.Minute))

	_, err = svc.CreatePost(ctx, alice, &domain.CreatePostRequest{Kind: "poll"})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestFeedShowsFollowedUsersAndSelf(t *testing.T) {
	svc, graph, db := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := graph.ToggleFollow(ctx, alice, bob)
	require.NoError(t, err)

	for user, caption := range map[uint]string{alice: "mine", bob: "followed", carol: "stranger"} {
		_, err := svc.CreatePost(ctx, user, &domain.CreatePostRequest{Caption: caption})
		require.NoError(t, err)
	}

	feed, err := svc.ListPosts(ctx, alice, FeedTypeFeed, nil, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), feed.Total)
	captions := []string{feed.Posts[0].Caption, feed.Posts[1].Caption}
	assert.ElementsMatch(t, []string{"mine", "followed"}, captions)
}

func TestStoriesListingExcludesExpired(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	fresh, err := svc.CreatePost(ctx, alice, &domain.CreatePostRequest{Kind: "story", Caption: "fresh"})
	require.NoError(t, err)
	expired, err := svc.CreatePost(ctx, alice, &domain.CreatePostRequest{Kind: "story", Caption: "stale"})
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&domain.PostModel{}).
		Where("id = ?", expired.ID).
		Update("expires_at", past).Error)

	stories, err := svc.ListPosts(ctx, alice, FeedTypeStories, nil, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), stories.Total)
	assert.Equal(t, fresh.ID, stories.Posts[0].ID)
}

func TestPerAuthorListingOverridesFollowFilter(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.CreatePost(ctx, bob, &domain.CreatePostRequest{Caption: "bobs"})
	require.NoError(t, err)

	// Alice does not follow bob, but an explicit author filter still works.
	posts, err := svc.ListPosts(ctx, alice, FeedTypeFeed, &bob, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), posts.Total)
	assert.Equal(t, "bobs", posts.Posts[0].Caption)
}

func TestLikeAndSaveToggleSymmetry(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post, err := svc.CreatePost(ctx, alice, &domain.CreatePostRequest{Caption: "hi"})
	require.NoError(t, err)

	action, err := svc.ToggleLike(ctx, alice, post.ID)
	require.NoError(t, err)
	assert.Equal(t, socialdomain.ToggleCreated, action)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikesCount)

	action, err = svc.ToggleLike(ctx, alice, post.ID)
	require.NoError(t, err)
	assert.Equal(t, socialdomain.ToggleRemoved, action)

	got, err = svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikesCount)

	action, err = svc.ToggleSave(ctx, alice, post.ID)
	require.NoError(t, err)
	assert.Equal(t, socialdomain.ToggleCreated, action)

	saved, err := svc.SavedPosts(ctx, alice, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.Total)
	assert.Equal(t, post.ID, saved.Posts[0].ID)

	_, err = svc.ToggleLike(ctx, alice, 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentsWithOneLevelNesting(t *testing.T) {
	svc, _, db := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post, err := svc.CreatePost(ctx, alice, &domain.CreatePostRequest{Caption: "hi"})
	require.NoError(t, err)

	top, err := svc.AddComment(ctx, bob, post.ID, &domain.CreateCommentRequest{Content: "lovely"})
	require.NoError(t, err)
	reply, err := svc.AddComment(ctx, alice, post.ID, &domain.CreateCommentRequest{Content: "thanks", ParentID: &top.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "bob", comments[0].Author.Name)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.CommentsCount)
}
