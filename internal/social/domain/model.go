package domain

import (
	"time"
)

// FollowModel is the GORM model for the follows table. The composite unique
// index is what makes the follow toggle race-free: concurrent duplicate
// inserts collapse into a single row.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  uint      `gorm:"column:follower_id;not null;uniqueIndex:idx_follows_pair"`
	FollowingID uint      `gorm:"column:following_id;not null;uniqueIndex:idx_follows_pair"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }

// CloseFriendModel is the GORM model for the close_friends table.
type CloseFriendModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_close_friends_pair"`
	FriendID  uint      `gorm:"column:friend_id;not null;uniqueIndex:idx_close_friends_pair"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CloseFriendModel) TableName() string { return "close_friends" }

// ToggleAction reports which way a toggle mutation went.
type ToggleAction string

const (
	ToggleCreated ToggleAction = "created"
	ToggleRemoved ToggleAction = "removed"
)
