package domain

import (
	"time"

	"github.com/fidel-otieno2/KinKeep.app/pkg/database"
)

// PostKind tags the three feed-item variants sharing the posts table.
// ExpiresAt is only meaningful for the story kind.
type PostKind string

const (
	PostKindPost  PostKind = "post"
	PostKindStory PostKind = "story"
	PostKindReel  PostKind = "reel"
)

// Valid reports whether k is a known post kind.
func (k PostKind) Valid() bool {
	switch k {
	case PostKindPost, PostKindStory, PostKindReel:
		return true
	}
	return false
}

// Visibility values for posts.
const (
	VisibilityPublic       = "public"
	VisibilityFamily       = "family"
	VisibilityCloseFriends = "close_friends"
)

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID        uint                 `gorm:"primaryKey;autoIncrement"`
	UserID    uint                 `gorm:"column:user_id;index;not null"`
	FamilyID  *uint                `gorm:"column:family_id;index"`
	Kind      string               `gorm:"type:varchar(10);index;not null;default:'post'"`
	Caption   string               `gorm:"type:text"`
	MediaURLs database.StringArray `gorm:"type:text"`
	MediaType string               `gorm:"type:varchar(20);not null;default:'photo'"`
	Location  string               `gorm:"type:varchar(255)"`
	Visibility string              `gorm:"type:varchar(20);not null;default:'public'"`
	ExpiresAt *time.Time           `gorm:"column:expires_at;index"`
	CreatedAt time.Time            `gorm:"autoCreateTime"`
	UpdatedAt time.Time            `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string { return "posts" }

// LikeModel is the GORM model for the likes table.
type LikeModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_likes_pair"`
	PostID    uint      `gorm:"column:post_id;not null;uniqueIndex:idx_likes_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikeModel) TableName() string { return "likes" }

// SavedPostModel is the GORM model for the saved_posts table.
type SavedPostModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_saved_posts_pair"`
	PostID    uint      `gorm:"column:post_id;not null;uniqueIndex:idx_saved_posts_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SavedPostModel) TableName() string { return "saved_posts" }

// PostCommentModel is the GORM model for the post_comments table.
// ParentID supports one level of reply nesting.
type PostCommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null"`
	PostID    uint      `gorm:"column:post_id;index;not null"`
	Content   string    `gorm:"type:text;not null"`
	ParentID  *uint     `gorm:"column:parent_id"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostCommentModel) TableName() string { return "post_comments" }

// Post is the domain representation of a feed item.
type Post struct {
	ID         uint
	UserID     uint
	FamilyID   *uint
	Kind       PostKind
	Caption    string
	MediaURLs  []string
	MediaType  string
	Location   string
	Visibility string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ToDomain converts PostModel to domain Post.
func (m *PostModel) ToDomain() *Post {
	return &Post{
		ID:         m.ID,
		UserID:     m.UserID,
		FamilyID:   m.FamilyID,
		Kind:       PostKind(m.Kind),
		Caption:    m.Caption,
		MediaURLs:  []string(m.MediaURLs),
		MediaType:  m.MediaType,
		Location:   m.Location,
		Visibility: m.Visibility,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// PostToModel converts domain Post to PostModel.
func PostToModel(p *Post) *PostModel {
	return &PostModel{
		ID:         p.ID,
		UserID:     p.UserID,
		FamilyID:   p.FamilyID,
		Kind:       string(p.Kind),
		Caption:    p.Caption,
		MediaURLs:  database.StringArray(p.MediaURLs),
		MediaType:  p.MediaType,
		Location:   p.Location,
		Visibility: p.Visibility,
		ExpiresAt:  p.ExpiresAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
