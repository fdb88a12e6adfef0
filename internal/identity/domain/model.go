package domain

import (
	"time"
)

// UserModel is the GORM model for the users table.
//
// Email deliberately carries no unique index: the product allows several
// accounts to share one email address, and login scans all of them.
type UserModel struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Username     *string    `gorm:"type:varchar(50);uniqueIndex"`
	Email        string     `gorm:"type:varchar(150);index;not null"`
	PasswordHash string     `gorm:"type:text;not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'member'"`
	IsVerified   bool       `gorm:"not null;default:false"`
	ProfileImage string     `gorm:"type:text"`
	Bio          string     `gorm:"type:text"`
	Website      string     `gorm:"type:varchar(200)"`
	Phone        string     `gorm:"type:varchar(20)"`
	Gender       string     `gorm:"type:varchar(10)"`
	Birthday     *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Name:         m.Name,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsVerified:   m.IsVerified,
		ProfileImage: m.ProfileImage,
		Bio:          m.Bio,
		Website:      m.Website,
		Phone:        m.Phone,
		Gender:       m.Gender,
		Birthday:     m.Birthday,
		CreatedAt:    m.CreatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsVerified:   u.IsVerified,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
		Website:      u.Website,
		Phone:        u.Phone,
		Gender:       u.Gender,
		Birthday:     u.Birthday,
		CreatedAt:    u.CreatedAt,
	}
}
