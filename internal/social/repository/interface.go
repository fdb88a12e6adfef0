package repository

import (
	"context"
	"errors"

	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
)

var ErrSelfEdge = errors.New("cannot create edge to self")

// GraphRepository defines persistence operations for follow and close-friend
// edges. Toggles are single atomic conditional writes: the unique pair index
// decides the outcome, not a prior read.
type GraphRepository interface {
	ToggleFollow(ctx context.Context, followerID, followingID uint) (domain.ToggleAction, error)
	ToggleCloseFriend(ctx context.Context, userID, friendID uint) (domain.ToggleAction, error)
	Followers(ctx context.Context, userID uint) ([]identitydomain.User, error)
	Following(ctx context.Context, userID uint) ([]identitydomain.User, error)
	CloseFriends(ctx context.Context, userID uint) ([]identitydomain.User, error)
	FollowersCount(ctx context.Context, userID uint) (int64, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
}
