package domain

import (
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

// UserSummary is the compact user view returned in follower and
// close-friend listings.
type UserSummary struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Username       *string `json:"username"`
	ProfilePicture string  `json:"profile_picture"`
}

type ToggleResponse struct {
	Action ToggleAction `json:"action"`
}

type ToggleCloseFriendRequest struct {
	FriendID uint `json:"friend_id" binding:"required"`
}

func SummaryFromUser(u *identitydomain.User) UserSummary {
	return UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.AvatarOrPlaceholder(),
	}
}

func SummariesFromUsers(users []identitydomain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, SummaryFromUser(&users[i]))
	}
	return out
}
