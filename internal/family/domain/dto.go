package domain

import (
	"time"

	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

// CreateFamilyRequest creates a family with the caller as admin member.
type CreateFamilyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// MemberView is a membership joined with its user.
type MemberView struct {
	UserID         uint      `json:"user_id"`
	Name           string    `json:"name"`
	Username       *string   `json:"username"`
	ProfilePicture string    `json:"profile_picture"`
	Relation       string    `json:"relation,omitempty"`
	RoleInFamily   string    `json:"role_in_family"`
	JoinedAt       time.Time `json:"joined_at"`
}

// FamilyResponse is a family view, with members when requested.
type FamilyResponse struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedBy   uint         `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	Members     []MemberView `json:"members,omitempty"`
}

func (f *Family) ToResponse() FamilyResponse {
	return FamilyResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
	}
}

// MemberViewFrom joins a membership with its user record.
func MemberViewFrom(m *Member, u *identitydomain.User) MemberView {
	view := MemberView{
		UserID:       m.UserID,
		Relation:     m.Relation,
		RoleInFamily: m.RoleInFamily,
		JoinedAt:     m.JoinedAt,
	}
	if u != nil {
		view.Name = u.Name
		view.Username = u.Username
		view.ProfilePicture = u.AvatarOrPlaceholder()
	}
	return view
}
