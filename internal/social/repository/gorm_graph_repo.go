package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

type GormGraphRepository struct {
	db *gorm.DB
}

var _ GraphRepository = (*GormGraphRepository)(nil)

func NewGormGraphRepository(db *gorm.DB) *GormGraphRepository {
	return &GormGraphRepository{db: db}
}

// ToggleFollow inserts the edge with ON CONFLICT DO NOTHING. When the insert
// hits the unique pair index the edge already existed and is deleted instead.
// Concurrent toggles therefore never double-insert.
func (r *GormGraphRepository) ToggleFollow(ctx context.Context, followerID, followingID uint) (domain.ToggleAction, error) {
	if followerID == followingID {
		return "", ErrSelfEdge
	}
	edge := domain.FollowModel{FollowerID: followerID, FollowingID: followingID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return domain.ToggleCreated, nil
	}
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.FollowModel{}).Error; err != nil {
		return "", err
	}
	return domain.ToggleRemoved, nil
}

func (r *GormGraphRepository) ToggleCloseFriend(ctx context.Context, userID, friendID uint) (domain.ToggleAction, error) {
	if userID == friendID {
		return "", ErrSelfEdge
	}
	edge := domain.CloseFriendModel{UserID: userID, FriendID: friendID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return domain.ToggleCreated, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&domain.CloseFriendModel{}).Error; err != nil {
		return "", err
	}
	return domain.ToggleRemoved, nil
}

func (r *GormGraphRepository) Followers(ctx context.Context, userID uint) ([]identitydomain.User, error) {
	return r.edgeUsers(ctx, "JOIN follows ON follows.follower_id = users.id", "follows.following_id = ?", userID)
}

func (r *GormGraphRepository) Following(ctx context.Context, userID uint) ([]identitydomain.User, error) {
	return r.edgeUsers(ctx, "JOIN follows ON follows.following_id = users.id", "follows.follower_id = ?", userID)
}

func (r *GormGraphRepository) CloseFriends(ctx context.Context, userID uint) ([]identitydomain.User, error) {
	return r.edgeUsers(ctx, "JOIN close_friends ON close_friends.friend_id = users.id", "close_friends.user_id = ?", userID)
}

func (r *GormGraphRepository) edgeUsers(ctx context.Context, join, cond string, userID uint) ([]identitydomain.User, error) {
	var models []identitydomain.UserModel
	if err := r.db.WithContext(ctx).
		Model(&identitydomain.UserModel{}).
		Joins(join).
		Where(cond, userID).
		Order("users.id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]identitydomain.User, 0, len(models))
	for _, m := range models {
		users = append(users, *m.ToDomain())
	}
	return users, nil
}

func (r *GormGraphRepository) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.FollowModel{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *GormGraphRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}
