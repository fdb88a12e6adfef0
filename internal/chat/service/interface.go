package service

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/chat/domain"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

var (
	// ErrNotParticipant gates every conversation read and write. It is
	// returned for nonexistent conversations too, so outsiders cannot probe
	// which ids exist.
	ErrNotParticipant = errors.New("not a participant of this conversation")
	ErrNoParticipants = errors.New("conversation needs at least one other participant")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmptyMessage   = errors.New("message needs content or media")
)

// ChatService is the conversation engine: conversation listing and creation,
// message history with read-cursor advancement, sending, and user search.
type ChatService interface {
	ListConversations(ctx context.Context, userID uint) ([]domain.ConversationSummary, error)
	CreateConversation(ctx context.Context, userID uint, req *domain.CreateConversationRequest) (*domain.ConversationSummary, error)
	// ListMessages returns one ascending page and, as a side effect, moves
	// the caller's read cursor to now.
	ListMessages(ctx context.Context, userID, conversationID uint, page, limit int) (*domain.MessagePage, error)
	SendMessage(ctx context.Context, userID, conversationID uint, req *domain.SendMessageRequest) (*domain.MessageView, error)
	SearchUsers(ctx context.Context, userID uint, query string) ([]socialdomain.UserSummary, error)
}
