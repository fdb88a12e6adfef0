package store

import "context"

// CountStore caches follower counts. A cache miss is not an error: Get
// returns found=false and the caller recomputes from the database.
type CountStore interface {
	GetFollowersCount(ctx context.Context, userID uint) (int64, bool, error)
	SetFollowersCount(ctx context.Context, userID uint, count int64) error
	InvalidateFollowersCount(ctx context.Context, userID uint) error
	Close() error
}
