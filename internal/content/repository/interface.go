package repository

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

var ErrPostNotFound = errors.New("post not found")

// PostCounts bundles the read-side derived counters for one post.
type PostCounts struct {
	Likes    int64
	Comments int64
}

// ListQuery narrows a post listing. FollowedOnly restricts to posts authored
// by users the viewer follows, plus the viewer. AuthorID overrides the follow
// filter with a single-author view.
type ListQuery struct {
	Kind          domain.PostKind
	ViewerID      uint
	AuthorID      *uint
	FollowedOnly  bool
	UnexpiredOnly bool
	Page          int
	Limit         int
}

// PostRepository defines persistence operations for posts, reactions and
// comments.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uint) (*domain.Post, error)
	List(ctx context.Context, q ListQuery) ([]domain.Post, int64, error)
	ToggleLike(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error)
	ToggleSave(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error)
	SavedPosts(ctx context.Context, userID uint, page, limit int) ([]domain.Post, int64, error)
	CreateComment(ctx context.Context, comment *domain.Comment) error
	Comments(ctx context.Context, postID uint) ([]domain.Comment, error)
	// CountsForPosts returns likes/comments counters keyed by post id.
	CountsForPosts(ctx context.Context, postIDs []uint) (map[uint]PostCounts, error)
}
