package domain

import "time"

// Family roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// FamilyModel is the GORM model for the families table.
type FamilyModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	CreatedBy   uint      `gorm:"column:created_by;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FamilyModel) TableName() string { return "families" }

// FamilyMemberModel is the GORM model for the family_members table.
type FamilyMemberModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	FamilyID     uint      `gorm:"column:family_id;not null;uniqueIndex:idx_family_members_pair"`
	UserID       uint      `gorm:"column:user_id;not null;uniqueIndex:idx_family_members_pair"`
	Relation     string    `gorm:"type:varchar(50)"`
	RoleInFamily string    `gorm:"type:varchar(20);not null;default:'member'"`
	JoinedAt     time.Time `gorm:"autoCreateTime"`
}

func (FamilyMemberModel) TableName() string { return "family_members" }

// Family is the domain representation of a family group.
type Family struct {
	ID          uint
	Name        string
	Description string
	CreatedBy   uint
	CreatedAt   time.Time
}

// Member is the domain representation of a family membership.
type Member struct {
	ID           uint
	FamilyID     uint
	UserID       uint
	Relation     string
	RoleInFamily string
	JoinedAt     time.Time
}

func (m *FamilyModel) ToDomain() *Family {
	return &Family{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func (m *FamilyMemberModel) ToDomain() *Member {
	return &Member{
		ID:           m.ID,
		FamilyID:     m.FamilyID,
		UserID:       m.UserID,
		Relation:     m.Relation,
		RoleInFamily: m.RoleInFamily,
		JoinedAt:     m.JoinedAt,
	}
}
