package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/fidel-otieno2/KinKeep.app/internal/identity/audit"
	"github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	"github.com/fidel-otieno2/KinKeep.app/pkg/jwt"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

// identityServiceImpl implements IdentityService.
type identityServiceImpl struct {
	repo      repository.UserRepository
	tokens    *jwt.Manager
	followers FollowerCounter
}

// NewIdentityService creates a new identity service. followers may be nil,
// in which case follower totals come straight from the repository.
func NewIdentityService(repo repository.UserRepository, tokens *jwt.Manager, followers FollowerCounter) IdentityService {
	return &identityServiceImpl{repo: repo, tokens: tokens, followers: followers}
}

// Register registers a new user. Duplicate emails are allowed: the product
// supports several accounts under one address.
func (s *identityServiceImpl) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         "member",
	}

	if err := s.repo.Create(ctx, user); err != nil {
		l.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	audit.Log(ctx, audit.ActionRegister, user.ID, "user registered")

	return s.authResponse(ctx, user)
}

// Login scans every account registered under the email and accepts the first
// one whose password matches.
func (s *identityServiceImpl) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	users, err := s.repo.GetAllByEmail(ctx, req.Email)
	if err != nil {
		l.Error().Err(err).Msg("failed to query users by email")
		return nil, err
	}

	var user *domain.User
	for i := range users {
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(req.Password)) == nil {
			user = &users[i]
			break
		}
	}
	if user == nil {
		audit.Log(ctx, audit.ActionLoginFailed, 0, "login failed: no credential match for "+req.Email)
		return nil, ErrInvalidCredentials
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")

	return s.authResponse(ctx, user)
}

// RefreshToken issues a new token pair from a valid refresh token.
func (s *identityServiceImpl) RefreshToken(ctx context.Context, req *domain.RefreshTokenRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		l.Warn().Err(err).Msg("refresh token rejected")
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error().Err(err).Uint(log.FieldUserID, claims.UserID).Msg("failed to get user after token refresh")
		return nil, err
	}

	audit.Log(ctx, audit.ActionRefreshToken, user.ID, "token refreshed")

	return s.authResponse(ctx, user)
}

// GetUser retrieves a user view with derived counters.
func (s *identityServiceImpl) GetUser(ctx context.Context, userID uint) (*domain.UserResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("failed to get user")
		return nil, err
	}

	resp := user.ToResponse(s.stats(ctx, userID))
	return &resp, nil
}

// UpdateProfile applies a partial profile update.
func (s *identityServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	l := log.Ctx(ctx)

	fields := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		fields["name"] = *req.Name
	}
	if req.Username != nil {
		fields["username"] = req.Username
	}
	if req.Email != nil && *req.Email != "" {
		fields["email"] = *req.Email
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.ProfileImage != nil {
		fields["profile_image"] = *req.ProfileImage
	}

	if err := s.repo.UpdateProfile(ctx, userID, fields); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("failed to update profile")
		return nil, err
	}

	audit.Log(ctx, audit.ActionUpdateProfile, userID, "profile updated")

	return s.GetUser(ctx, userID)
}

// ChangePassword changes a user's password after verifying the current one.
func (s *identityServiceImpl) ChangePassword(ctx context.Context, userID uint, req *domain.ChangePasswordRequest) error {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("failed to get user for password change")
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash new password")
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("failed to update password")
		return err
	}

	audit.Log(ctx, audit.ActionChangePassword, userID, "password changed")
	return nil
}

func (s *identityServiceImpl) authResponse(ctx context.Context, user *domain.User) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	accessToken, refreshToken, expiresAt, err := s.tokens.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		l.Error().Err(err).Uint(log.FieldUserID, user.ID).Msg("failed to generate tokens")
		return nil, err
	}

	return &domain.AuthResponse{
		User:         user.ToResponse(s.stats(ctx, user.ID)),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// stats is best-effort: a failed counter query degrades the view to zeros
// rather than failing the whole request.
func (s *identityServiceImpl) stats(ctx context.Context, userID uint) domain.Stats {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint(log.FieldUserID, userID).Msg("failed to derive user stats")
		return domain.Stats{}
	}
	if s.followers != nil {
		if count, err := s.followers.FollowersCount(ctx, userID); err == nil {
			stats.Followers = count
		} else {
			log.Ctx(ctx).Warn().Err(err).Uint(log.FieldUserID, userID).Msg("cached followers count failed")
		}
	}
	return stats
}

// Ensure interface is satisfied at compile time.
var _ IdentityService = (*identityServiceImpl)(nil)
