package service

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/story/domain"
)

var (
	ErrStoryNotFound        = errors.New("story not found")
	ErrForbidden            = errors.New("not allowed to access this story")
	ErrNotFamilyMember      = errors.New("not a member of this family")
	ErrEmptyContent         = errors.New("story has no content to enhance")
	ErrAlreadyEnhanced      = errors.New("story already has a pending enhancement")
	ErrNoPendingEnhancement = errors.New("story has no enhancement to review")
	ErrEnhancerDisabled     = errors.New("story enhancement is not configured")
)

// StoryService manages family stories and their AI enhancement lifecycle.
type StoryService interface {
	CreateStory(ctx context.Context, userID uint, req *domain.CreateStoryRequest) (*domain.StoryResponse, error)
	GetStory(ctx context.Context, userID, storyID uint) (*domain.StoryResponse, error)
	ListStories(ctx context.Context, userID uint, familyID *uint, page, limit int) (*domain.StoryListResponse, error)
	UpdateStory(ctx context.Context, userID, storyID uint, req *domain.UpdateStoryRequest) (*domain.StoryResponse, error)
	// EnhanceStory produces an AI draft for the story. The draft lands in
	// enhanced_content with enhancement_accepted=false; the original content
	// is untouched.
	EnhanceStory(ctx context.Context, userID, storyID uint) (*domain.StoryResponse, error)
	// AcceptEnhancement accepts the pending draft, or rejects it, clearing
	// the draft and resetting the enhancement flags.
	AcceptEnhancement(ctx context.Context, userID, storyID uint, accept bool) (*domain.StoryResponse, error)
	AddComment(ctx context.Context, userID, storyID uint, req *domain.CreateStoryCommentRequest) (*domain.StoryCommentResponse, error)
	ListComments(ctx context.Context, userID, storyID uint) ([]domain.StoryCommentResponse, error)
}
