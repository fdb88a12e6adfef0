package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

type GormPostRepository struct {
	db *gorm.DB
}

var _ PostRepository = (*GormPostRepository)(nil)

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	model := domain.PostToModel(post)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*post = *model.ToDomain()
	return nil
}

func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*domain.Post, error) {
	var model domain.PostModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormPostRepository) List(ctx context.Context, q ListQuery) ([]domain.Post, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Where("kind = ?", string(q.Kind))

	switch {
	case q.AuthorID != nil:
		tx = tx.Where("user_id = ?", *q.AuthorID)
	case q.FollowedOnly:
		followed := r.db.Model(&socialdomain.FollowModel{}).
			Select("following_id").
			Where("follower_id = ?", q.ViewerID)
		tx = tx.Where("user_id = ? OR user_id IN (?)", q.ViewerID, followed)
	}
	if q.UnexpiredOnly {
		tx = tx.Where("expires_at IS NULL OR expires_at > ?", time.Now().UTC())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []domain.PostModel
	if err := tx.Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return toDomainPosts(models), total, nil
}

// ToggleLike inserts the (user, post) like with ON CONFLICT DO NOTHING and
// deletes it when the row already existed, mirroring the follow toggle.
func (r *GormPostRepository) ToggleLike(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error) {
	row := domain.LikeModel{UserID: userID, PostID: postID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return socialdomain.ToggleCreated, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.LikeModel{}).Error; err != nil {
		return "", err
	}
	return socialdomain.ToggleRemoved, nil
}

func (r *GormPostRepository) ToggleSave(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error) {
	row := domain.SavedPostModel{UserID: userID, PostID: postID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return socialdomain.ToggleCreated, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.SavedPostModel{}).Error; err != nil {
		return "", err
	}
	return socialdomain.ToggleRemoved, nil
}

func (r *GormPostRepository) SavedPosts(ctx context.Context, userID uint, page, limit int) ([]domain.Post, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ?", userID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []domain.PostModel
	if err := tx.Order("saved_posts.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return toDomainPosts(models), total, nil
}

func (r *GormPostRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	model := domain.CommentToModel(comment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*comment = *model.ToDomain()
	return nil
}

func (r *GormPostRepository) Comments(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var models []domain.PostCommentModel
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(models))
	for i := range models {
		comments = append(comments, *models[i].ToDomain())
	}
	return comments, nil
}

func (r *GormPostRepository) CountsForPosts(ctx context.Context, postIDs []uint) (map[uint]PostCounts, error) {
	counts := make(map[uint]PostCounts, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type row struct {
		PostID uint
		N      int64
	}
	var likeRows []row
	if err := r.db.WithContext(ctx).Model(&domain.LikeModel{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeRows).Error; err != nil {
		return nil, err
	}
	for _, lr := range likeRows {
		c := counts[lr.PostID]
		c.Likes = lr.N
		counts[lr.PostID] = c
	}

	var commentRows []row
	if err := r.db.WithContext(ctx).Model(&domain.PostCommentModel{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentRows).Error; err != nil {
		return nil, err
	}
	for _, cr := range commentRows {
		c := counts[cr.PostID]
		c.Comments = cr.N
		counts[cr.PostID] = c
	}
	return counts, nil
}

func toDomainPosts(models []domain.PostModel) []domain.Post {
	posts := make([]domain.Post, 0, len(models))
	for i := range models {
		posts = append(posts, *models[i].ToDomain())
	}
	return posts
}
