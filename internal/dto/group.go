package dto

import (
	"time"

	"github.com/taskapp/taskapp-api/internal/models"
)

// GroupDTO represents a group in API responses
type GroupDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	AdminID   uint64    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	Admin     *UserDTO  `json:"admin,omitempty"`
}

// CollaboratorDTO represents a membership row joined with its user
type CollaboratorDTO struct {
	ID      uint64                `json:"id"`
	GroupID uint64                `json:"group_id"`
	Role    models.GroupRole      `json:"role"`
	User    *UserSummaryWithEmail `json:"user,omitempty"`
}

// UserSummaryWithEmail is the member summary shown on group rosters
type UserSummaryWithEmail struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MembershipDTO represents one of the caller's group memberships
type MembershipDTO struct {
	ID    uint64           `json:"id"`
	Role  models.GroupRole `json:"role"`
	Group GroupDTO         `json:"group"`
}

// ToGroupDTO converts a Group model to GroupDTO
func ToGroupDTO(group models.Group) GroupDTO {
	return GroupDTO{
		ID:        group.ID,
		Name:      group.Name,
		AdminID:   group.AdminID,
		CreatedAt: group.CreatedAt,
	}
}

// ToCollaboratorDTO converts a membership row to CollaboratorDTO. The user
// must be preloaded; rows whose user no longer resolves keep a nil user.
func ToCollaboratorDTO(collab models.Collaborator) CollaboratorDTO {
	dto := CollaboratorDTO{
		ID:      collab.ID,
		GroupID: collab.GroupID,
		Role:    collab.Role,
	}

	if collab.User.ID != 0 {
		dto.User = &UserSummaryWithEmail{
			ID:       collab.User.ID,
			Username: collab.User.Username,
			Email:    collab.User.Email,
		}
	}

	return dto
}

// ToMembershipDTO converts a membership row to MembershipDTO, resolving the
// group admin from the given user map when present.
func ToMembershipDTO(collab models.Collaborator, admins map[uint64]models.User) MembershipDTO {
	group := ToGroupDTO(collab.Group)
	if admin, ok := admins[collab.Group.AdminID]; ok {
		summary := ToUserDTO(admin)
		group.Admin = &summary
	}

	return MembershipDTO{
		ID:    collab.ID,
		Role:  collab.Role,
		Group: group,
	}
}
