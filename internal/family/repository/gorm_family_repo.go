package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

type GormFamilyRepository struct {
	db *gorm.DB
}

var _ FamilyRepository = (*GormFamilyRepository)(nil)

func NewGormFamilyRepository(db *gorm.DB) *GormFamilyRepository {
	return &GormFamilyRepository{db: db}
}

// Create inserts the family row and the creator's admin membership inside a
// single transaction so a family can never exist without its admin.
func (r *GormFamilyRepository) Create(ctx context.Context, family *domain.Family, creatorRelation string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := domain.FamilyModel{
			Name:        family.Name,
			Description: family.Description,
			CreatedBy:   family.CreatedBy,
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		member := domain.FamilyMemberModel{
			FamilyID:     model.ID,
			UserID:       family.CreatedBy,
			Relation:     creatorRelation,
			RoleInFamily: domain.RoleAdmin,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		*family = *model.ToDomain()
		return nil
	})
}

func (r *GormFamilyRepository) GetByID(ctx context.Context, id uint) (*domain.Family, error) {
	var model domain.FamilyModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormFamilyRepository) FamiliesOf(ctx context.Context, userID uint) ([]domain.Family, error) {
	var models []domain.FamilyModel
	if err := r.db.WithContext(ctx).
		Model(&domain.FamilyModel{}).
		Joins("JOIN family_members ON family_members.family_id = families.id").
		Where("family_members.user_id = ?", userID).
		Order("families.created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	families := make([]domain.Family, 0, len(models))
	for i := range models {
		families = append(families, *models[i].ToDomain())
	}
	return families, nil
}

func (r *GormFamilyRepository) Members(ctx context.Context, familyID uint) ([]MemberWithUser, error) {
	var memberModels []domain.FamilyMemberModel
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("joined_at ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	if len(memberModels) == 0 {
		return nil, nil
	}

	userIDs := make([]uint, 0, len(memberModels))
	for i := range memberModels {
		userIDs = append(userIDs, memberModels[i].UserID)
	}
	var userModels []identitydomain.UserModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&userModels).Error; err != nil {
		return nil, err
	}
	usersByID := make(map[uint]identitydomain.User, len(userModels))
	for i := range userModels {
		usersByID[userModels[i].ID] = *userModels[i].ToDomain()
	}

	out := make([]MemberWithUser, 0, len(memberModels))
	for i := range memberModels {
		out = append(out, MemberWithUser{
			Member: *memberModels[i].ToDomain(),
			User:   usersByID[memberModels[i].UserID],
		})
	}
	return out, nil
}

func (r *GormFamilyRepository) IsMember(ctx context.Context, familyID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.FamilyMemberModel{}).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		Count(&count).Error
	return count > 0, err
}
