package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	contentdomain "github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	model := domain.UserToModel(user)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUsernameExists
		}
		return result.Error
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a user by ID.
func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetAllByEmail returns every account registered under an email address.
func (r *GormUserRepository) GetAllByEmail(ctx context.Context, email string) ([]domain.User, error) {
	var models []domain.UserModel
	result := r.db.WithContext(ctx).Where("email = ?", email).Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	users := make([]domain.User, len(models))
	for i := range models {
		users[i] = *models[i].ToDomain()
	}
	return users, nil
}

// UpdateProfile applies a partial field update to a user row.
func (r *GormUserRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUsernameExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *GormUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchByUsername does a case-insensitive substring match on usernames.
func (r *GormUserRepository) SearchByUsername(ctx context.Context, query string, excludeID uint, limit int) ([]domain.User, error) {
	var models []domain.UserModel
	pattern := "%" + query + "%"
	result := r.db.WithContext(ctx).
		Where("username IS NOT NULL").
		Where("LOWER(username) LIKE LOWER(?)", pattern).
		Where("id <> ?", excludeID).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	users := make([]domain.User, len(models))
	for i := range models {
		users[i] = *models[i].ToDomain()
	}
	return users, nil
}

// Stats derives follower/following/post counters. Post count excludes the
// ephemeral story kind, matching the profile counters shown to users.
func (r *GormUserRepository) Stats(ctx context.Context, userID uint) (domain.Stats, error) {
	var stats domain.Stats

	db := r.db.WithContext(ctx)
	if err := db.Model(&socialdomain.FollowModel{}).
		Where("following_id = ?", userID).
		Count(&stats.Followers).Error; err != nil {
		return domain.Stats{}, err
	}
	if err := db.Model(&socialdomain.FollowModel{}).
		Where("follower_id = ?", userID).
		Count(&stats.Following).Error; err != nil {
		return domain.Stats{}, err
	}
	if err := db.Model(&contentdomain.PostModel{}).
		Where("user_id = ? AND kind <> ?", userID, contentdomain.PostKindStory).
		Count(&stats.Posts).Error; err != nil {
		return domain.Stats{}, err
	}

	return stats, nil
}

// Ensure interface is satisfied at compile time.
var _ UserRepository = (*GormUserRepository)(nil)
