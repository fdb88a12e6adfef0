package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fidel-otieno2/KinKeep.app/internal/chat/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
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
		&domain.ConversationModel{},
		&domain.ParticipantModel{},
		&domain.MessageModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	m := identitydomain.UserModel{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: "member"}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, domain.PairKey(3, 7), domain.PairKey(7, 3))
	assert.Equal(t, "3:7", domain.PairKey(7, 3))
}

func TestFindOrCreateDirectIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConversationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, created, err := repo.FindOrCreateDirect(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.IsGroup)

	// Same pair in either order resolves to the same conversation.
	second, created, err := repo.FindOrCreateDirect(ctx, bob, alice)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&domain.ConversationModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	members, err := repo.Participants(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestConcurrentDirectCreationsCollapse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConversationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = repo.FindOrCreateDirect(ctx, alice, bob)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&domain.ConversationModel{}).
		Where("pair_key = ?", domain.PairKey(alice, bob)).
		Count(&count).Error)
	assert.LessOrEqual(t, count, int64(1), "pair_key unique index must deduplicate direct conversations")
}

func TestGroupConversationsShareNoPairKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConversationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	g1, err := repo.CreateGroup(ctx, alice, []uint{alice, bob, carol}, "family")
	require.NoError(t, err)
	// A second group with the same members is a distinct conversation.
	g2, err := repo.CreateGroup(ctx, alice, []uint{alice, bob, carol}, "")
	require.NoError(t, err)
	assert.NotEqual(t, g1.ID, g2.ID)
	assert.Nil(t, g1.PairKey)
	assert.Nil(t, g2.PairKey)
}

func TestUnreadCountUsesReadCursor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConversationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	conv, _, err := repo.FindOrCreateDirect(ctx, alice, bob)
	require.NoError(t, err)

	send := func(sender uint, content string) {
		require.NoError(t, repo.CreateMessage(ctx, &domain.Message{
			ConversationID: conv.ID,
			SenderID:       sender,
			Content:        content,
			MessageType:    domain.MessageTypeText,
		}))
	}

	send(bob, "hi")
	send(bob, "are you there?")
	send(alice, "yes")

	// Cursor unset: every message from others counts.
	unread, err := repo.UnreadCount(ctx, conv.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	// Own messages never count as unread.
	unread, err = repo.UnreadCount(ctx, conv.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, repo.MarkRead(ctx, conv.ID, alice, time.Now().UTC().Add(time.Second)))
	unread, err = repo.UnreadCount(ctx, conv.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestMessagesPageAscendingWithTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConversationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	conv, _, err := repo.FindOrCreateDirect(ctx, alice, bob)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		msg := domain.Message{
			ConversationID: conv.ID,
			SenderID:       alice,
			Content:        string(rune('a' + i)),
			MessageType:    domain.MessageTypeText,
		}
		require.NoError(t, repo.CreateMessage(ctx, &msg))
	}

	page, total, err := repo.Messages(ctx, conv.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 3)
	assert.Equal(t, "a", page[0].Content)
	assert.Equal(t, "c", page[2].Content)

	page, _, err = repo.Messages(ctx, conv.ID, 2, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e", page[1].Content)
}

func TestSendingBumpsConversationOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConversationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	withBob, _, err := repo.FindOrCreateDirect(ctx, alice, bob)
	require.NoError(t, err)
	withCarol, _, err := repo.FindOrCreateDirect(ctx, alice, carol)
	require.NoError(t, err)

	// Force distinct updated_at values, then message the older conversation.
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&domain.ConversationModel{}).
		Where("id = ?", withBob.ID).
		Update("updated_at", past).Error)

	require.NoError(t, repo.CreateMessage(ctx, &domain.Message{
		ConversationID: withBob.ID,
		SenderID:       bob,
		Content:        "ping",
		MessageType:    domain.MessageTypeText,
	}))

	convs, err := repo.ConversationsOf(ctx, alice)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, withBob.ID, convs[0].ID, "conversation with the newest message sorts first")
	assert.Equal(t, withCarol.ID, convs[1].ID)
}

func TestIsParticipant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConversationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	conv, _, err := repo.FindOrCreateDirect(ctx, alice, bob)
	require.NoError(t, err)

	member, err := repo.IsParticipant(ctx, conv.ID, alice)
	require.NoError(t, err)
	assert.True(t, member)

	member, err = repo.IsParticipant(ctx, conv.ID, carol)
	require.NoError(t, err)
	assert.False(t, member)

	// Nonexistent conversations read as non-membership, not as an error.
	member, err = repo.IsParticipant(ctx, 9999, alice)
	require.NoError(t, err)
	assert.False(t, member)
}
