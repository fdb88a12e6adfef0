package domain

import (
	"time"

	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

// CreatePostRequest creates a feed item. Kind defaults to "post".
type CreatePostRequest struct {
	Kind       string   `json:"kind"`
	Caption    string   `json:"caption"`
	MediaURLs  []string `json:"media_urls"`
	MediaType  string   `json:"media_type"`
	Location   string   `json:"location"`
	Visibility string   `json:"visibility"`
	FamilyID   *uint    `json:"family_id"`
}

// CreateCommentRequest adds a comment to a post. ParentID nests the comment
// one level under an existing comment.
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// AuthorView is the compact author block embedded in post and comment views.
type AuthorView struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Username       *string `json:"username"`
	ProfilePicture string  `json:"profile_picture"`
}

// PostResponse is a post with its read-side derived counters.
type PostResponse struct {
	ID            uint       `json:"id"`
	Author        AuthorView `json:"author"`
	FamilyID      *uint      `json:"family_id,omitempty"`
	Kind          PostKind   `json:"kind"`
	Caption       string     `json:"caption"`
	MediaURLs     []string   `json:"media_urls"`
	MediaType     string     `json:"media_type"`
	Location      string     `json:"location,omitempty"`
	Visibility    string     `json:"visibility"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PostListResponse pages posts with the total for the query.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// Comment is the domain representation of a post comment.
type Comment struct {
	ID        uint
	UserID    uint
	PostID    uint
	Content   string
	ParentID  *uint
	CreatedAt time.Time
}

// CommentResponse is a comment with its author view.
type CommentResponse struct {
	ID        uint       `json:"id"`
	PostID    uint       `json:"post_id"`
	Author    AuthorView `json:"author"`
	Content   string     `json:"content"`
	ParentID  *uint      `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (m *PostCommentModel) ToDomain() *Comment {
	return &Comment{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		Content:   m.Content,
		ParentID:  m.ParentID,
		CreatedAt: m.CreatedAt,
	}
}

func CommentToModel(c *Comment) *PostCommentModel {
	return &PostCommentModel{
		ID:        c.ID,
		UserID:    c.UserID,
		PostID:    c.PostID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
}

// AuthorViewFromUser builds the embedded author block.
func AuthorViewFromUser(u *identitydomain.User) AuthorView {
	return AuthorView{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.AvatarOrPlaceholder(),
	}
}
