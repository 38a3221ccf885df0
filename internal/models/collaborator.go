package models

import "time"

type GroupRole string

const (
	GroupRoleAdmin        GroupRole = "admin"
	GroupRoleCollaborator GroupRole = "collaborator"
)

// Collaborator is the membership row joining users and groups. The composite
// unique index makes duplicate membership impossible even when two identical
// requests race past the application-level existence check.
type Collaborator struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	GroupID  uint64    `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`
	Role     GroupRole `gorm:"type:varchar(20);not null;default:'collaborator'" json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Group Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
