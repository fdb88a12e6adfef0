package repository

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/story/domain"
)

var ErrStoryNotFound = errors.New("story not found")

// StoryRepository defines persistence operations for family stories.
type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	GetByID(ctx context.Context, id uint) (*domain.Story, error)
	ByFamily(ctx context.Context, familyID uint, page, limit int) ([]domain.Story, int64, error)
	ByOwner(ctx context.Context, userID uint, page, limit int) ([]domain.Story, int64, error)
	// Update applies a partial column update to one story.
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	CreateComment(ctx context.Context, comment *domain.StoryComment) error
	Comments(ctx context.Context, storyID uint) ([]domain.StoryComment, error)
}
