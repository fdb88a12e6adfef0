package domain

import (
	"time"

	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

// CreateConversationRequest starts a conversation. The caller is always
// included; a single other participant yields (or finds) a direct chat,
// more yield a group.
type CreateConversationRequest struct {
	ParticipantIDs []uint `json:"participant_ids" binding:"required"`
	Name           string `json:"name"`
}

// SendMessageRequest posts a message. Content and MediaURL may not both be
// empty.
type SendMessageRequest struct {
	Content     string `json:"content"`
	MediaURL    string `json:"media_url"`
	MessageType string `json:"message_type"`
	ReplyToID   *uint  `json:"reply_to_id"`
}

// ParticipantView is a conversation member joined with their user record.
type ParticipantView struct {
	UserID         uint       `json:"user_id"`
	Name           string     `json:"name"`
	Username       *string    `json:"username"`
	ProfilePicture string     `json:"profile_picture"`
	JoinedAt       time.Time  `json:"joined_at"`
	LastReadAt     *time.Time `json:"last_read_at,omitempty"`
}

// MessageView is the API view of a message.
type MessageView struct {
	ID             uint       `json:"id"`
	ConversationID uint       `json:"conversation_id"`
	SenderID       uint       `json:"sender_id"`
	Content        string     `json:"content"`
	MediaURL       string     `json:"media_url,omitempty"`
	MessageType    string     `json:"message_type"`
	ReplyToID      *uint      `json:"reply_to_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
}

// ConversationSummary is one row of the conversation list: identity of the
// chat, who is in it, the latest message and how much of it the caller has
// not read.
type ConversationSummary struct {
	ID           uint              `json:"id"`
	IsGroup      bool              `json:"is_group"`
	Name         string            `json:"name"`
	Avatar       string            `json:"avatar"`
	Participants []ParticipantView `json:"participants"`
	LastMessage  *MessageView      `json:"last_message,omitempty"`
	UnreadCount  int64             `json:"unread_count"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// MessagePage is a page of messages in ascending creation order.
type MessagePage struct {
	Messages []MessageView `json:"messages"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
}

func (m *Message) ToView() MessageView {
	return MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		MediaURL:       m.MediaURL,
		MessageType:    m.MessageType,
		ReplyToID:      m.ReplyToID,
		CreatedAt:      m.CreatedAt,
		EditedAt:       m.EditedAt,
	}
}

// ParticipantViewFrom joins a membership with its user record.
func ParticipantViewFrom(p *Participant, u *identitydomain.User) ParticipantView {
	view := ParticipantView{
		UserID:     p.UserID,
		JoinedAt:   p.JoinedAt,
		LastReadAt: p.LastReadAt,
	}
	if u != nil {
		view.Name = u.Name
		view.Username = u.Username
		view.ProfilePicture = u.AvatarOrPlaceholder()
	}
	return view
}
