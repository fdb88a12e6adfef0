package domain

import "time"

// CreateStoryRequest creates a family story.
type CreateStoryRequest struct {
	FamilyID        uint   `json:"family_id" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	MediaURL        string `json:"media_url"`
	Type            string `json:"type"`
	Visibility      string `json:"visibility"`
	Language        string `json:"language"`
	DurationSeconds int    `json:"duration_seconds"`
}

// UpdateStoryRequest partially updates a story. Nil fields are untouched.
type UpdateStoryRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
}

// AcceptEnhancementRequest accepts or rejects the pending AI draft.
type AcceptEnhancementRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// CreateStoryCommentRequest adds a comment to a story.
type CreateStoryCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// StoryResponse is the API view of a story.
type StoryResponse struct {
	ID                  uint      `json:"id"`
	UserID              uint      `json:"user_id"`
	FamilyID            uint      `json:"family_id"`
	Title               string    `json:"title"`
	Content             string    `json:"content"`
	EnhancedContent     string    `json:"enhanced_content,omitempty"`
	MediaURL            string    `json:"media_url,omitempty"`
	Type                string    `json:"type"`
	Visibility          string    `json:"visibility"`
	Language            string    `json:"language,omitempty"`
	DurationSeconds     int       `json:"duration_seconds,omitempty"`
	AIEnhanced          bool      `json:"ai_enhanced"`
	EnhancementAccepted bool      `json:"enhancement_accepted"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// StoryListResponse pages stories with the total for the query.
type StoryListResponse struct {
	Stories []StoryResponse `json:"stories"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// StoryCommentResponse is the API view of a story comment.
type StoryCommentResponse struct {
	ID        uint      `json:"id"`
	StoryID   uint      `json:"story_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Story) ToResponse() StoryResponse {
	return StoryResponse{
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

func (c *StoryComment) ToResponse() StoryCommentResponse {
	return StoryCommentResponse{
		ID:        c.ID,
		StoryID:   c.StoryID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
