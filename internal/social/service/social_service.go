package service

import (
	"context"
	"errors"

	identityrepo "github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/audit"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/repository"
	"github.com/fidel-otieno2/KinKeep.app/internal/social/store"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

type socialService struct {
	graph  repository.GraphRepository
	users  identityrepo.UserRepository
	counts store.CountStore
}

var _ SocialService = (*socialService)(nil)

// NewSocialService builds the social service. counts may be nil when no
// cache is configured; counts are then always computed from the database.
func NewSocialService(graph repository.GraphRepository, users identityrepo.UserRepository, counts store.CountStore) SocialService {
	return &socialService{graph: graph, users: users, counts: counts}
}

func (s *socialService) ToggleFollow(ctx context.Context, followerID, targetID uint) (domain.ToggleAction, error) {
	if followerID == targetID {
		return "", ErrSelfFollow
	}
	if err := s.ensureUserExists(ctx, targetID); err != nil {
		return "", err
	}
	action, err := s.graph.ToggleFollow(ctx, followerID, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrSelfEdge) {
			return "", ErrSelfFollow
		}
		return "", err
	}
	s.invalidateCount(ctx, targetID)
	audit.Log(ctx, audit.ActionToggleFollow, followerID, targetID, string(action))
	return action, nil
}

func (s *socialService) ToggleCloseFriend(ctx context.Context, userID, targetID uint) (domain.ToggleAction, error) {
	if userID == targetID {
		return "", ErrSelfFollow
	}
	if err := s.ensureUserExists(ctx, targetID); err != nil {
		return "", err
	}
	action, err := s.graph.ToggleCloseFriend(ctx, userID, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrSelfEdge) {
			return "", ErrSelfFollow
		}
		return "", err
	}
	audit.Log(ctx, audit.ActionToggleCloseFriend, userID, targetID, string(action))
	return action, nil
}

func (s *socialService) Followers(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.graph.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.SummariesFromUsers(users), nil
}

func (s *socialService) Following(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.graph.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.SummariesFromUsers(users), nil
}

func (s *socialService) CloseFriends(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	users, err := s.graph.CloseFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.SummariesFromUsers(users), nil
}

// FollowersCount is cache-aside: serve the cached value when present, else
// count from the database and repopulate the cache best-effort.
func (s *socialService) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	if s.counts != nil {
		count, found, err := s.counts.GetFollowersCount(ctx, userID)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Uint(log.FieldUserID, userID).Msg("followers count cache read failed")
		} else if found {
			return count, nil
		}
	}
	count, err := s.graph.FollowersCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.counts != nil {
		if err := s.counts.SetFollowersCount(ctx, userID, count); err != nil {
			log.Ctx(ctx).Warn().Err(err).Uint(log.FieldUserID, userID).Msg("followers count cache write failed")
		}
	}
	return count, nil
}

func (s *socialService) ensureUserExists(ctx context.Context, userID uint) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, identityrepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *socialService) invalidateCount(ctx context.Context, userID uint) {
	if s.counts == nil {
		return
	}
	if err := s.counts.InvalidateFollowersCount(ctx, userID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint(log.FieldUserID, userID).Msg("followers count invalidation failed")
	}
}
