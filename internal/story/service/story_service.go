package service

import (
	"context"
	"errors"

	familyservice "github.com/fidel-otieno2/KinKeep.app/internal/family/service"
	"github.com/fidel-otieno2/KinKeep.app/internal/story/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/story/enhancer"
	"github.com/fidel-otieno2/KinKeep.app/internal/story/repository"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

type storyService struct {
	stories  repository.StoryRepository
	families familyservice.FamilyService
	enhancer enhancer.Enhancer
}

var _ StoryService = (*storyService)(nil)

// NewStoryService builds the story service. enh may be nil when no AI
// backend is configured; enhancement requests then fail with
// ErrEnhancerDisabled.
func NewStoryService(stories repository.StoryRepository, families familyservice.FamilyService, enh enhancer.Enhancer) StoryService {
	return &storyService{stories: stories, families: families, enhancer: enh}
}

func (s *storyService) CreateStory(ctx context.Context, userID uint, req *domain.CreateStoryRequest) (*domain.StoryResponse, error) {
	if err := s.requireMembership(ctx, req.FamilyID, userID); err != nil {
		return nil, err
	}

	story := domain.Story{
		UserID:          userID,
		FamilyID:        req.FamilyID,
		Title:           req.Title,
		Content:         req.Content,
		MediaURL:        req.MediaURL,
		Type:            req.Type,
		Visibility:      req.Visibility,
		Language:        req.Language,
		DurationSeconds: req.DurationSeconds,
	}
	if story.Type == "" {
		story.Type = domain.TypeText
	}
	if story.Visibility == "" {
		story.Visibility = domain.VisibilityFamily
	}

	if err := s.stories.Create(ctx, &story); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Uint("story_id", story.ID).Uint("family_id", story.FamilyID).Msg("story created")
	view := story.ToResponse()
	return &view, nil
}

func (s *storyService) GetStory(ctx context.Context, userID, storyID uint) (*domain.StoryResponse, error) {
	story, err := s.readableStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}
	view := story.ToResponse()
	return &view, nil
}

func (s *storyService) ListStories(ctx context.Context, userID uint, familyID *uint, page, limit int) (*domain.StoryListResponse, error) {
	var (
		stories []domain.Story
		total   int64
		err     error
	)
	if familyID != nil {
		if err := s.requireMembership(ctx, *familyID, userID); err != nil {
			return nil, err
		}
		stories, total, err = s.stories.ByFamily(ctx, *familyID, page, limit)
	} else {
		stories, total, err = s.stories.ByOwner(ctx, userID, page, limit)
	}
	if err != nil {
		return nil, err
	}

	views := make([]domain.StoryResponse, 0, len(stories))
	for i := range stories {
		views = append(views, stories[i].ToResponse())
	}
	return &domain.StoryListResponse{Stories: views, Total: total, Page: page, Limit: limit}, nil
}

func (s *storyService) UpdateStory(ctx context.Context, userID, storyID uint, req *domain.UpdateStoryRequest) (*domain.StoryResponse, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
	}
	if err := s.stories.Update(ctx, story.ID, fields); err != nil {
		return nil, err
	}
	return s.refresh(ctx, story.ID)
}

func (s *storyService) EnhanceStory(ctx context.Context, userID, storyID uint) (*domain.StoryResponse, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}
	if story.Content == "" {
		return nil, ErrEmptyContent
	}
	if story.AIEnhanced {
		return nil, ErrAlreadyEnhanced
	}
	if s.enhancer == nil {
		return nil, ErrEnhancerDisabled
	}

	draft, err := s.enhancer.Enhance(ctx, story.Title, story.Content)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("story_id", storyID).Msg("story enhancement failed")
		return nil, err
	}

	if err := s.stories.Update(ctx, story.ID, map[string]interface{}{
		"enhanced_content":     draft,
		"ai_enhanced":          true,
		"enhancement_accepted": false,
	}); err != nil {
		return nil, err
	}
	return s.refresh(ctx, story.ID)
}

func (s *storyService) AcceptEnhancement(ctx context.Context, userID, storyID uint, accept bool) (*domain.StoryResponse, error) {
	story, err := s.ownedStory(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}
	if !story.AIEnhanced {
		return nil, ErrNoPendingEnhancement
	}

	fields := map[string]interface{}{"enhancement_accepted": accept}
	if !accept {
		// Rejection discards the draft entirely.
		fields["enhanced_content"] = ""
		fields["ai_enhanced"] = false
		fields["enhancement_accepted"] = false
	}
	if err := s.stories.Update(ctx, story.ID, fields); err != nil {
		return nil, err
	}
	return s.refresh(ctx, story.ID)
}

func (s *storyService) AddComment(ctx context.Context, userID, storyID uint, req *domain.CreateStoryCommentRequest) (*domain.StoryCommentResponse, error) {
	if _, err := s.readableStory(ctx, userID, storyID); err != nil {
		return nil, err
	}
	comment := domain.StoryComment{
		StoryID: storyID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.stories.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}
	view := comment.ToResponse()
	return &view, nil
}

func (s *storyService) ListComments(ctx context.Context, userID, storyID uint) ([]domain.StoryCommentResponse, error) {
	if _, err := s.readableStory(ctx, userID, storyID); err != nil {
		return nil, err
	}
	comments, err := s.stories.Comments(ctx, storyID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.StoryCommentResponse, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].ToResponse())
	}
	return views, nil
}

// readableStory loads the story and enforces its visibility: private is
// owner-only, family is family-members-only, public is open.
func (s *storyService) readableStory(ctx context.Context, userID, storyID uint) (*domain.Story, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}

	switch story.Visibility {
	case domain.VisibilityPublic:
		return story, nil
	case domain.VisibilityPrivate:
		if story.UserID != userID {
			return nil, ErrForbidden
		}
		return story, nil
	default:
		if story.UserID == userID {
			return story, nil
		}
		member, err := s.families.IsMember(ctx, story.FamilyID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrForbidden
		}
		return story, nil
	}
}

func (s *storyService) ownedStory(ctx context.Context, userID, storyID uint) (*domain.Story, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	if story.UserID != userID {
		return nil, ErrForbidden
	}
	return story, nil
}

func (s *storyService) requireMembership(ctx context.Context, familyID, userID uint) error {
	member, err := s.families.IsMember(ctx, familyID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotFamilyMember
	}
	return nil
}

func (s *storyService) refresh(ctx context.Context, storyID uint) (*domain.StoryResponse, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	view := story.ToResponse()
	return &view, nil
}
