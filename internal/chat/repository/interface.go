package repository

import (
	"context"
	"time"

	"github.com/fidel-otieno2/KinKeep.app/internal/chat/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

// ParticipantWithUser pairs a membership row with its user record.
type ParticipantWithUser struct {
	Participant domain.Participant
	User        identitydomain.User
}

// ConversationRepository defines persistence operations for conversations,
// memberships and messages.
type ConversationRepository interface {
	// FindOrCreateDirect returns the direct conversation between the two
	// users, creating it (with both memberships, in one transaction) when it
	// does not exist. The pair_key unique index resolves creation races to
	// the surviving row. created reports whether this call inserted it.
	FindOrCreateDirect(ctx context.Context, creatorID, otherID uint) (conv *domain.Conversation, created bool, err error)
	// CreateGroup inserts a group conversation and all memberships in one
	// transaction.
	CreateGroup(ctx context.Context, creatorID uint, memberIDs []uint, name string) (*domain.Conversation, error)
	// ConversationsOf lists the caller's conversations newest-activity first.
	ConversationsOf(ctx context.Context, userID uint) ([]domain.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error)
	Participants(ctx context.Context, conversationID uint) ([]ParticipantWithUser, error)
	LastMessage(ctx context.Context, conversationID uint) (*domain.Message, error)
	// UnreadCount counts messages after the member's read cursor, excluding
	// their own. An unset cursor counts every message from others.
	UnreadCount(ctx context.Context, conversationID, userID uint) (int64, error)
	// Messages pages the conversation ascending by creation time.
	Messages(ctx context.Context, conversationID uint, page, limit int) ([]domain.Message, int64, error)
	// MarkRead advances the member's read cursor.
	MarkRead(ctx context.Context, conversationID, userID uint, at time.Time) error
	// CreateMessage inserts the message and bumps the conversation's
	// updated_at in the same transaction, so list ordering and the new
	// message can never disagree.
	CreateMessage(ctx context.Context, message *domain.Message) error
}
