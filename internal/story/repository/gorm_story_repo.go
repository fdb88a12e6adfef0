package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fidel-otieno2/KinKeep.app/internal/story/domain"
)

type GormStoryRepository struct {
	db *gorm.DB
}

var _ StoryRepository = (*GormStoryRepository)(nil)

func NewGormStoryRepository(db *gorm.DB) *GormStoryRepository {
	return &GormStoryRepository{db: db}
}

func (r *GormStoryRepository) Create(ctx context.Context, story *domain.Story) error {
	model := domain.StoryToModel(story)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*story = *model.ToDomain()
	return nil
}

func (r *GormStoryRepository) GetByID(ctx context.Context, id uint) (*domain.Story, error) {
	var model domain.StoryModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormStoryRepository) ByFamily(ctx context.Context, familyID uint, page, limit int) ([]domain.Story, int64, error) {
	return r.list(ctx, "family_id = ?", familyID, page, limit)
}

func (r *GormStoryRepository) ByOwner(ctx context.Context, userID uint, page, limit int) ([]domain.Story, int64, error) {
	return r.list(ctx, "user_id = ?", userID, page, limit)
}

func (r *GormStoryRepository) list(ctx context.Context, cond string, arg uint, page, limit int) ([]domain.Story, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.StoryModel{}).Where(cond, arg)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []domain.StoryModel
	if err := tx.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}
	stories := make([]domain.Story, 0, len(models))
	for i := range models {
		stories = append(stories, *models[i].ToDomain())
	}
	return stories, total, nil
}

func (r *GormStoryRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&domain.StoryModel{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func (r *GormStoryRepository) CreateComment(ctx context.Context, comment *domain.StoryComment) error {
	model := domain.StoryCommentModel{
		StoryID: comment.StoryID,
		UserID:  comment.UserID,
		Content: comment.Content,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*comment = *model.ToDomain()
	return nil
}

func (r *GormStoryRepository) Comments(ctx context.Context, storyID uint) ([]domain.StoryComment, error) {
	var models []domain.StoryCommentModel
	if err := r.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	comments := make([]domain.StoryComment, 0, len(models))
	for i := range models {
		comments = append(comments, *models[i].ToDomain())
	}
	return comments, nil
}
