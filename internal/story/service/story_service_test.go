package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	familydomain "github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
	familyrepo "github.com/fidel-otieno2/KinKeep.app/internal/family/repository"
	familyservice "github.com/fidel-otieno2/KinKeep.app/internal/family/service"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/story/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/story/repository"
)

type stubEnhancer struct {
	result string
	err    error
	calls  int
}

func (s *stubEnhancer) Enhance(ctx context.Context, title, content string) (string, error) {
	s.calls++
	return s.result, s.err
}

type fixture struct {
	svc      StoryService
	families familyservice.FamilyService
	db       *gorm.DB
	enh      *stubEnhancer
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identitydomain.UserModel{},
		&familydomain.FamilyModel{},
		&familydomain.FamilyMemberModel{},
		&domain.StoryModel{},
		&domain.StoryCommentModel{},
	))
	enh := &stubEnhancer{result: "A beautifully polished story."}
	families := familyservice.NewFamilyService(familyrepo.NewGormFamilyRepository(db))
	svc := NewStoryService(repository.NewGormStoryRepository(db), families, enh)
	return &fixture{svc: svc, families: families, db: db, enh: enh}
}

func (f *fixture) user(t *testing.T, name string) uint {
	t.Helper()
	m := identitydomain.UserModel{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: "member"}
	require.NoError(t, f.db.Create(&m).Error)
	return m.ID
}

func (f *fixture) family(t *testing.T, creator uint, members ...uint) uint {
	t.Helper()
	created, err := f.families.CreateFamily(context.Background(), creator, &familydomain.CreateFamilyRequest{Name: "smiths"})
	require.NoError(t, err)
	for _, id := range members {
		require.NoError(t, f.db.Create(&familydomain.FamilyMemberModel{
			FamilyID: created.ID, UserID: id, RoleInFamily: familydomain.RoleMember,
		}).Error)
	}
	return created.ID
}

func TestCreateStoryRequiresMembership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	outsider := f.user(t, "mallory")
	familyID := f.family(t, alice)

	story, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "Grandma's garden", Content: "She planted roses.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeText, story.Type)
	assert.Equal(t, domain.VisibilityFamily, story.Visibility)

	_, err = f.svc.CreateStory(ctx, outsider, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "intrusion", Content: "x",
	})
	assert.ErrorIs(t, err, ErrNotFamilyMember)
}

func TestStoryVisibilityGates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	cousin := f.user(t, "cousin")
	outsider := f.user(t, "mallory")
	familyID := f.family(t, alice, cousin)

	private, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "diary", Content: "secret", Visibility: domain.VisibilityPrivate,
	})
	require.NoError(t, err)
	familyStory, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "reunion", Content: "we met",
	})
	require.NoError(t, err)
	public, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "recipe", Content: "the pie", Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	_, err = f.svc.GetStory(ctx, cousin, private.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.GetStory(ctx, alice, private.ID)
	require.NoError(t, err)

	_, err = f.svc.GetStory(ctx, cousin, familyStory.ID)
	require.NoError(t, err)
	_, err = f.svc.GetStory(ctx, outsider, familyStory.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.GetStory(ctx, outsider, public.ID)
	require.NoError(t, err)
}

func TestEnhancementStateMachine(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	cousin := f.user(t, "cousin")
	familyID := f.family(t, alice, cousin)

	story, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "The farm", Content: "We had a farm.",
	})
	require.NoError(t, err)

	// Owner-only.
	_, err = f.svc.EnhanceStory(ctx, cousin, story.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	enhanced, err := f.svc.EnhanceStory(ctx, alice, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "A beautifully polished story.", enhanced.EnhancedContent)
	assert.Equal(t, "We had a farm.", enhanced.Content, "original content stays untouched")
	assert.True(t, enhanced.AIEnhanced)
	assert.False(t, enhanced.EnhancementAccepted)

	// A second enhancement while one is pending is rejected.
	_, err = f.svc.EnhanceStory(ctx, alice, story.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnhanced)
	assert.Equal(t, 1, f.enh.calls)

	accepted, err := f.svc.AcceptEnhancement(ctx, alice, story.ID, true)
	require.NoError(t, err)
	assert.True(t, accepted.EnhancementAccepted)
	assert.Equal(t, "A beautifully polished story.", accepted.EnhancedContent)
}

func TestRejectingEnhancementClearsDraft(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	familyID := f.family(t, alice)

	story, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "The farm", Content: "We had a farm.",
	})
	require.NoError(t, err)

	_, err = f.svc.EnhanceStory(ctx, alice, story.ID)
	require.NoError(t, err)

	rejected, err := f.svc.AcceptEnhancement(ctx, alice, story.ID, false)
	require.NoError(t, err)
	assert.Empty(t, rejected.EnhancedContent)
	assert.False(t, rejected.AIEnhanced)
	assert.False(t, rejected.EnhancementAccepted)

	// Rejection reopens the story for another attempt.
	again, err := f.svc.EnhanceStory(ctx, alice, story.ID)
	require.NoError(t, err)
	assert.True(t, again.AIEnhanced)
}

func TestEnhancePreconditions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	familyID := f.family(t, alice)

	empty, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "untold",
	})
	require.NoError(t, err)
	_, err = f.svc.EnhanceStory(ctx, alice, empty.ID)
	assert.ErrorIs(t, err, ErrEmptyContent)

	story, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "told", Content: "something",
	})
	require.NoError(t, err)

	_, err = f.svc.AcceptEnhancement(ctx, alice, story.ID, true)
	assert.ErrorIs(t, err, ErrNoPendingEnhancement)

	f.enh.err = errors.New("upstream unavailable")
	_, err = f.svc.EnhanceStory(ctx, alice, story.ID)
	require.Error(t, err)

	// A failed call leaves the story untouched.
	got, err := f.svc.GetStory(ctx, alice, story.ID)
	require.NoError(t, err)
	assert.False(t, got.AIEnhanced)
	assert.Empty(t, got.EnhancedContent)
}

func TestUpdateStoryOwnerOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	cousin := f.user(t, "cousin")
	familyID := f.family(t, alice, cousin)

	story, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "v1", Content: "draft",
	})
	require.NoError(t, err)

	title := "v2"
	_, err = f.svc.UpdateStory(ctx, cousin, story.ID, &domain.UpdateStoryRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.UpdateStory(ctx, alice, story.ID, &domain.UpdateStoryRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Title)
	assert.Equal(t, "draft", updated.Content)
}

func TestStoryCommentsFollowVisibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	cousin := f.user(t, "cousin")
	outsider := f.user(t, "mallory")
	familyID := f.family(t, alice, cousin)

	story, err := f.svc.CreateStory(ctx, alice, &domain.CreateStoryRequest{
		FamilyID: familyID, Title: "reunion", Content: "we met",
	})
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, cousin, story.ID, &domain.CreateStoryCommentRequest{Content: "I remember this!"})
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, outsider, story.ID, &domain.CreateStoryCommentRequest{Content: "who are you"})
	assert.ErrorIs(t, err, ErrForbidden)

	comments, err := f.svc.ListComments(ctx, alice, story.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, cousin, comments[0].UserID)
}
