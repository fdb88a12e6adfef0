package service

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/family/repository"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

type familyService struct {
	families repository.FamilyRepository
}

var _ FamilyService = (*familyService)(nil)

func NewFamilyService(families repository.FamilyRepository) FamilyService {
	return &familyService{families: families}
}

func (s *familyService) CreateFamily(ctx context.Context, userID uint, req *domain.CreateFamilyRequest) (*domain.FamilyResponse, error) {
	family := domain.Family{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}
	if err := s.families.Create(ctx, &family, ""); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Uint("family_id", family.ID).Msg("family created")

	view := family.ToResponse()
	members, err := s.memberViews(ctx, family.ID)
	if err != nil {
		return nil, err
	}
	view.Members = members
	return &view, nil
}

func (s *familyService) MyFamilies(ctx context.Context, userID uint) ([]domain.FamilyResponse, error) {
	families, err := s.families.FamiliesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.FamilyResponse, 0, len(families))
	for i := range families {
		views = append(views, families[i].ToResponse())
	}
	return views, nil
}

func (s *familyService) GetFamily(ctx context.Context, userID, familyID uint) (*domain.FamilyResponse, error) {
	family, err := s.families.GetByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, repository.ErrFamilyNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, err
	}
	member, err := s.families.IsMember(ctx, familyID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	view := family.ToResponse()
	members, err := s.memberViews(ctx, familyID)
	if err != nil {
		return nil, err
	}
	view.Members = members
	return &view, nil
}

func (s *familyService) IsMember(ctx context.Context, familyID, userID uint) (bool, error) {
	return s.families.IsMember(ctx, familyID, userID)
}

func (s *familyService) memberViews(ctx context.Context, familyID uint) ([]domain.MemberView, error) {
	members, err := s.families.Members(ctx, familyID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.MemberView, 0, len(members))
	for i := range members {
		views = append(views, domain.MemberViewFrom(&members[i].Member, &members[i].User))
	}
	return views, nil
}
