package repository

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	// GetAllByEmail returns every account registered under an email address.
	// Emails are not unique, so login has to scan all of them.
	GetAllByEmail(ctx context.Context, email string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	// SearchByUsername does a case-insensitive substring match on usernames,
	// excluding excludeID, capped at limit results.
	SearchByUsername(ctx context.Context, query string, excludeID uint, limit int) ([]domain.User, error)
	// Stats derives follower/following/post counters from the underlying
	// edge and content tables.
	Stats(ctx context.Context, userID uint) (domain.Stats, error)
}
