package domain

import "time"

// Story types.
const (
	TypeText  = "text"
	TypeAudio = "audio"
	TypeVideo = "video"
)

// Story visibility levels.
const (
	VisibilityPrivate = "private"
	VisibilityFamily  = "family"
	VisibilityPublic  = "public"
)

// StoryModel is the GORM model for the stories table. EnhancedContent holds
// the AI draft until the owner accepts or rejects it; the original Content
// is never overwritten.
type StoryModel struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement"`
	UserID              uint      `gorm:"column:user_id;index;not null"`
	FamilyID            uint      `gorm:"column:family_id;index;not null"`
	Title               string    `gorm:"type:varchar(200);not null"`
	Content             string    `gorm:"type:text"`
	EnhancedContent     string    `gorm:"type:text"`
	MediaURL            string    `gorm:"type:text"`
	Type                string    `gorm:"type:varchar(10);not null;default:'text'"`
	Visibility          string    `gorm:"type:varchar(20);not null;default:'family'"`
	Language            string    `gorm:"type:varchar(10)"`
	DurationSeconds     int       `gorm:"column:duration_seconds"`
	AIEnhanced          bool      `gorm:"column:ai_enhanced;not null;default:false"`
	EnhancementAccepted bool      `gorm:"column:enhancement_accepted;not null;default:false"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (StoryModel) TableName() string { return "stories" }

// StoryCommentModel is the GORM model for the story_comments table.
type StoryCommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	StoryID   uint      `gorm:"column:story_id;index;not null"`
	UserID    uint      `gorm:"column:user_id;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (StoryCommentModel) TableName() string { return "story_comments" }

// Story is the domain representation of a family story.
type Story struct {
	ID                  uint
	UserID              uint
	FamilyID            uint
	Title               string
	Content             string
	EnhancedContent     string
	MediaURL            string
	Type                string
	Visibility          string
	Language            string
	DurationSeconds     int
	AIEnhanced          bool
	EnhancementAccepted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// StoryComment is the domain representation of a story comment.
type StoryComment struct {
	ID        uint
	StoryID   uint
	UserID    uint
	Content   string
	CreatedAt time.Time
}

func (m *StoryModel) ToDomain() *Story {
	return &Story{
		ID:                  m.ID,
		UserID:              m.UserID,
		FamilyID:            m.FamilyID,
		Title:               m.Title,
		Content:             m.Content,
		EnhancedContent:     m.EnhancedContent,
		MediaURL:            m.MediaURL,
		Type:                m.Type,
		Visibility:          m.Visibility,
		Language:            m.Language,
		DurationSeconds:     m.DurationSeconds,
		AIEnhanced:          m.AIEnhanced,
		EnhancementAccepted: m.EnhancementAccepted,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// StoryToModel converts domain Story to StoryModel.
func StoryToModel(s *Story) *StoryModel {
	return &StoryModel{
		ID:                  s.ID,
		UserID:              s.UserID,
		FamilyID:            s.FamilyID,
		Title:               s.Title,
		Content:             s.Content,
		EnhancedContent:     s.EnhancedContent,
		MediaURL:            s.MediaURL,
		Type:                s.Type,
		Visibility:          s.Visibility,
		Language:            s.Language,
		DurationSeconds:     s.DurationSeconds,
		AIEnhanced:          s.AIEnhanced,
		EnhancementAccepted: s.EnhancementAccepted,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func (m *StoryCommentModel) ToDomain() *StoryComment {
	return &StoryComment{
		ID:        m.ID,
		StoryID:   m.StoryID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
