package service

import (
	"context"
	"errors"
	"time"

	"github.com/fidel-otieno2/KinKeep.app/internal/chat/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/chat/repository"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	identityrepo "github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

const searchLimit = 20

type chatService struct {
	conversations repository.ConversationRepository
	users         identityrepo.UserRepository
}

var _ ChatService = (*chatService)(nil)

func NewChatService(conversations repository.ConversationRepository, users identityrepo.UserRepository) ChatService {
	return &chatService{conversations: conversations, users: users}
}

func (s *chatService) ListConversations(ctx context.Context, userID uint) ([]domain.ConversationSummary, error) {
	convs, err := s.conversations.ConversationsOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ConversationSummary, 0, len(convs))
	for i := range convs {
		summary, err := s.summarize(ctx, &convs[i], userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *chatService) CreateConversation(ctx context.Context, userID uint, req *domain.CreateConversationRequest) (*domain.ConversationSummary, error) {
	others := dedupOthers(req.ParticipantIDs, userID)
	if len(others) == 0 {
		return nil, ErrNoParticipants
	}
	for _, id := range others {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			if errors.Is(err, identityrepo.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	var (
		conv *domain.Conversation
		err  error
	)
	if len(others) == 1 {
		var created bool
		conv, created, err = s.conversations.FindOrCreateDirect(ctx, userID, others[0])
		if err == nil && created {
			log.Ctx(ctx).Info().Uint("conversation_id", conv.ID).Msg("direct conversation created")
		}
	} else {
		members := append([]uint{userID}, others...)
		conv, err = s.conversations.CreateGroup(ctx, userID, members, req.Name)
		if err == nil {
			log.Ctx(ctx).Info().Uint("conversation_id", conv.ID).Int("members", len(members)).Msg("group conversation created")
		}
	}
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, conv, userID)
}

func (s *chatService) ListMessages(ctx context.Context, userID, conversationID uint, page, limit int) (*domain.MessagePage, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	messages, total, err := s.conversations.Messages(ctx, conversationID, page, limit)
	if err != nil {
		return nil, err
	}

	// Reading the history is what marks it read.
	if err := s.conversations.MarkRead(ctx, conversationID, userID, time.Now().UTC()); err != nil {
		return nil, err
	}

	views := make([]domain.MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messages[i].ToView())
	}
	return &domain.MessagePage{Messages: views, Total: total, Page: page, Limit: limit}, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID uint, req *domain.SendMessageRequest) (*domain.MessageView, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	if req.Content == "" && req.MediaURL == "" {
		return nil, ErrEmptyMessage
	}

	message := domain.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        req.Content,
		MediaURL:       req.MediaURL,
		MessageType:    req.MessageType,
		ReplyToID:      req.ReplyToID,
	}
	if message.MessageType == "" {
		message.MessageType = domain.MessageTypeText
	}
	if err := s.conversations.CreateMessage(ctx, &message); err != nil {
		return nil, err
	}

	view := message.ToView()
	return &view, nil
}

func (s *chatService) SearchUsers(ctx context.Context, userID uint, query string) ([]socialdomain.UserSummary, error) {
	users, err := s.users.SearchByUsername(ctx, query, userID, searchLimit)
	if err != nil {
		return nil, err
	}
	return socialdomain.SummariesFromUsers(users), nil
}

func (s *chatService) requireParticipant(ctx context.Context, conversationID, userID uint) error {
	member, err := s.conversations.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotParticipant
	}
	return nil
}

// summarize builds one conversation-list row: derived name and avatar, the
// member list, the latest message and the caller's unread count.
func (s *chatService) summarize(ctx context.Context, conv *domain.Conversation, userID uint) (*domain.ConversationSummary, error) {
	members, err := s.conversations.Participants(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ParticipantView, 0, len(members))
	var other *identitydomain.User
	for i := range members {
		views = append(views, domain.ParticipantViewFrom(&members[i].Participant, &members[i].User))
		if !conv.IsGroup && members[i].Participant.UserID != userID {
			other = &members[i].User
		}
	}

	name, avatar := conversationIdentity(conv, other)

	lastMessage, err := s.conversations.LastMessage(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	unread, err := s.conversations.UnreadCount(ctx, conv.ID, userID)
	if err != nil {
		return nil, err
	}

	summary := domain.ConversationSummary{
		ID:           conv.ID,
		IsGroup:      conv.IsGroup,
		Name:         name,
		Avatar:       avatar,
		Participants: views,
		UnreadCount:  unread,
		UpdatedAt:    conv.UpdatedAt,
	}
	if lastMessage != nil {
		view := lastMessage.ToView()
		summary.LastMessage = &view
	}
	return &summary, nil
}

// conversationIdentity derives the display name and avatar: the other
// member's handle for direct chats, the stored name or the fallback for
// groups. Accounts without a handle fall back to their full name.
func conversationIdentity(conv *domain.Conversation, other *identitydomain.User) (string, string) {
	if !conv.IsGroup && other != nil {
		name := other.Name
		if other.Username != nil && *other.Username != "" {
			name = *other.Username
		}
		return name, other.AvatarOrPlaceholder()
	}
	name := conv.Name
	if name == "" {
		name = domain.GroupFallbackName
	}
	return name, identitydomain.PlaceholderAvatar(conv.ID)
}

func dedupOthers(ids []uint, callerID uint) []uint {
	seen := map[uint]bool{callerID: true}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
