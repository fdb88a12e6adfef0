package service

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidKind     = errors.New("invalid post kind")
	ErrInvalidFeedType = errors.New("invalid feed type")
)

// Feed listing types accepted by ListPosts.
const (
	FeedTypeFeed    = "feed"
	FeedTypeStories = "stories"
	FeedTypeReels   = "reels"
)

// ContentService manages posts, reactions and comments.
type ContentService interface {
	CreatePost(ctx context.Context, userID uint, req *domain.CreatePostRequest) (*domain.PostResponse, error)
	GetPost(ctx context.Context, id uint) (*domain.PostResponse, error)
	ListPosts(ctx context.Context, viewerID uint, feedType string, authorID *uint, page, limit int) (*domain.PostListResponse, error)
	ToggleLike(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error)
	ToggleSave(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error)
	SavedPosts(ctx context.Context, userID uint, page, limit int) (*domain.PostListResponse, error)
	AddComment(ctx context.Context, userID, postID uint, req *domain.CreateCommentRequest) (*domain.CommentResponse, error)
	ListComments(ctx context.Context, postID uint) ([]domain.CommentResponse, error)
}
