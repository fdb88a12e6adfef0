package service

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUsernameTaken      = errors.New("username already taken")
)

// FollowerCounter serves follower totals for user views. The social area
// provides a cache-backed implementation.
type FollowerCounter interface {
	FollowersCount(ctx context.Context, userID uint) (int64, error)
}

// IdentityService covers registration, authentication and profile management.
type IdentityService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	RefreshToken(ctx context.Context, req *domain.RefreshTokenRequest) (*domain.AuthResponse, error)
	GetUser(ctx context.Context, userID uint) (*domain.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *domain.UpdateProfileRequest) (*domain.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *domain.ChangePasswordRequest) error
}
