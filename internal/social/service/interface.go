package service

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

var (
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrUserNotFound = errors.New("user not found")
)

// SocialService manages follow and close-friend relationships.
type SocialService interface {
	ToggleFollow(ctx context.Context, followerID, targetID uint) (domain.ToggleAction, error)
	ToggleCloseFriend(ctx context.Context, userID, targetID uint) (domain.ToggleAction, error)
	Followers(ctx context.Context, userID uint) ([]domain.UserSummary, error)
	Following(ctx context.Context, userID uint) ([]domain.UserSummary, error)
	CloseFriends(ctx context.Context, userID uint) ([]domain.UserSummary, error)
	FollowersCount(ctx context.Context, userID uint) (int64, error)
}
