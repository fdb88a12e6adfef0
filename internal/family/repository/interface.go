package repository

import (
	"context"
	"errors"

	"github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

var ErrFamilyNotFound = errors.New("family not found")

// MemberWithUser pairs a membership row with its user record.
type MemberWithUser struct {
	Member domain.Member
	User   identitydomain.User
}

// FamilyRepository defines persistence operations for families and their
// memberships.
type FamilyRepository interface {
	// Create inserts the family and its creator's admin membership in one
	// transaction.
	Create(ctx context.Context, family *domain.Family, creatorRelation string) error
	GetByID(ctx context.Context, id uint) (*domain.Family, error)
	// FamiliesOf returns the families userID belongs to.
	FamiliesOf(ctx context.Context, userID uint) ([]domain.Family, error)
	Members(ctx context.Context, familyID uint) ([]MemberWithUser, error)
	IsMember(ctx context.Context, familyID, userID uint) (bool, error)
}
