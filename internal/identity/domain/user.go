package domain

import (
	"fmt"
	"time"
)

// User represents a user entity.
type User struct {
	ID           uint
	Name         string
	Username     *string
	Email        string
	PasswordHash string
	Role         string
	IsVerified   bool
	ProfileImage string
	Bio          string
	Website      string
	Phone        string
	Gender       string
	Birthday     *time.Time
	CreatedAt    time.Time
}

// Stats holds the read-side derived counters for a user.
type Stats struct {
	Followers int64 `json:"followers_count"`
	Following int64 `json:"following_count"`
	Posts     int64 `json:"posts_count"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a refresh token request.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	Bio          *string `json:"bio"`
	Website      *string `json:"website"`
	Phone        *string `json:"phone"`
	Gender       *string `json:"gender"`
	ProfileImage *string `json:"profile_image"`
}

// ChangePasswordRequest represents a change password request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// AuthResponse represents an authentication response with tokens.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    int64        `json:"expires_at"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Username       *string `json:"username"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	IsVerified     bool    `json:"is_verified"`
	ProfileImage   string  `json:"profile_image"`
	Bio            string  `json:"bio,omitempty"`
	Website        string  `json:"website,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Gender         string  `json:"gender,omitempty"`
	Birthday       *string `json:"birthday,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	FollowersCount int64   `json:"followers_count"`
	FollowingCount int64   `json:"following_count"`
	PostsCount     int64   `json:"posts_count"`
}

// PlaceholderAvatar returns the deterministic placeholder image for a user
// with no profile image set.
func PlaceholderAvatar(userID uint) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/150/150", userID)
}

// AvatarOrPlaceholder returns the user's profile image, falling back to the
// deterministic placeholder.
func (u *User) AvatarOrPlaceholder() string {
	if u.ProfileImage != "" {
		return u.ProfileImage
	}
	return PlaceholderAvatar(u.ID)
}

// ToResponse converts User to UserResponse. Derived counters are filled in
// by the service layer.
func (u *User) ToResponse(stats Stats) UserResponse {
	var birthday *string
	if u.Birthday != nil {
		b := u.Birthday.Format("2006-01-02")
		birthday = &b
	}
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		IsVerified:     u.IsVerified,
		ProfileImage:   u.ProfileImage,
		Bio:            u.Bio,
		Website:        u.Website,
		Phone:          u.Phone,
		Gender:         u.Gender,
		Birthday:       birthday,
		CreatedAt:      u.CreatedAt,
		FollowersCount: stats.Followers,
		FollowingCount: stats.Following,
		PostsCount:     stats.Posts,
	}
}
