package domain

import (
	"fmt"
	"time"
)

// Message types.
const (
	MessageTypeText      = "text"
	MessageTypeImage     = "image"
	MessageTypeVideo     = "video"
	MessageTypeVoice     = "voice"
	MessageTypePostShare = "post_share"
)

// GroupFallbackName names group conversations that were created without one.
const GroupFallbackName = "Group Chat"

// ConversationModel is the GORM model for the conversations table.
//
// PairKey is "loID:hiID" for direct conversations and NULL for groups. Its
// unique index is what deduplicates direct chats: two racing creations for
// the same pair collapse into one row instead of two.
type ConversationModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	IsGroup   bool      `gorm:"column:is_group;not null;default:false"`
	Name      string    `gorm:"type:varchar(100)"`
	PairKey   *string   `gorm:"column:pair_key;type:varchar(50);uniqueIndex"`
	CreatedBy uint      `gorm:"column:created_by;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ConversationModel) TableName() string { return "conversations" }

// ParticipantModel is the GORM model for the conversation_participants
// table. LastReadAt is the per-member read cursor: nil means the member has
// never opened the conversation.
type ParticipantModel struct {
	ID             uint       `gorm:"primaryKey;autoIncrement"`
	ConversationID uint       `gorm:"column:conversation_id;not null;uniqueIndex:idx_participants_pair"`
	UserID         uint       `gorm:"column:user_id;not null;uniqueIndex:idx_participants_pair"`
	JoinedAt       time.Time  `gorm:"autoCreateTime"`
	LastReadAt     *time.Time `gorm:"column:last_read_at"`
}

func (ParticipantModel) TableName() string { return "conversation_participants" }

// MessageModel is the GORM model for the messages table. ReplyToID is not
// checked against the conversation; a reply can reference any message id.
type MessageModel struct {
	ID             uint       `gorm:"primaryKey;autoIncrement"`
	ConversationID uint       `gorm:"column:conversation_id;index;not null"`
	SenderID       uint       `gorm:"column:sender_id;not null"`
	Content        string     `gorm:"type:text"`
	MediaURL       string     `gorm:"column:media_url;type:text"`
	MessageType    string     `gorm:"column:message_type;type:varchar(20);not null;default:'text'"`
	ReplyToID      *uint      `gorm:"column:reply_to_id"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	EditedAt       *time.Time `gorm:"column:edited_at"`
}

func (MessageModel) TableName() string { return "messages" }

// Conversation is the domain representation of a conversation.
type Conversation struct {
	ID        uint
	IsGroup   bool
	Name      string
	PairKey   *string
	CreatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Participant is the domain representation of a conversation membership.
type Participant struct {
	ConversationID uint
	UserID         uint
	JoinedAt       time.Time
	LastReadAt     *time.Time
}

// Message is the domain representation of a chat message.
type Message struct {
	ID             uint
	ConversationID uint
	SenderID       uint
	Content        string
	MediaURL       string
	MessageType    string
	ReplyToID      *uint
	CreatedAt      time.Time
	EditedAt       *time.Time
}

// PairKey builds the canonical direct-conversation key for two user ids,
// smaller id first, so both orderings map to the same key.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

func (m *ConversationModel) ToDomain() *Conversation {
	return &Conversation{
		ID:        m.ID,
		IsGroup:   m.IsGroup,
		Name:      m.Name,
		PairKey:   m.PairKey,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *ParticipantModel) ToDomain() *Participant {
	return &Participant{
		ConversationID: m.ConversationID,
		UserID:         m.UserID,
		JoinedAt:       m.JoinedAt,
		LastReadAt:     m.LastReadAt,
	}
}

func (m *MessageModel) ToDomain() *Message {
	return &Message{
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

// MessageToModel converts domain Message to MessageModel.
func MessageToModel(msg *Message) *MessageModel {
	return &MessageModel{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		MediaURL:       msg.MediaURL,
		MessageType:    msg.MessageType,
		ReplyToID:      msg.ReplyToID,
		CreatedAt:      msg.CreatedAt,
		EditedAt:       msg.EditedAt,
	}
}
