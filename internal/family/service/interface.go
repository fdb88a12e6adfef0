package service

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
)

var (
	ErrFamilyNotFound = errors.New("family not found")
	ErrNotMember      = errors.New("not a member of this family")
)

// FamilyService manages family groups and memberships.
type FamilyService interface {
	CreateFamily(ctx context.Context, userID uint, req *domain.CreateFamilyRequest) (*domain.FamilyResponse, error)
	MyFamilies(ctx context.Context, userID uint) ([]domain.FamilyResponse, error)
	// GetFamily returns the family with its members. Non-members get
	// ErrNotMember regardless of whether they can guess the id.
	GetFamily(ctx context.Context, userID, familyID uint) (*domain.FamilyResponse, error)
	// IsMember is the membership gate shared with the story area.
	IsMember(ctx context.Context, familyID, userID uint) (bool, error)
}
