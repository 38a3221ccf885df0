package models

import "time"

type SystemRole string

const (
	SystemRoleUser   SystemRole = "user"
	SystemRoleMaster SystemRole = "master"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(100);not null" json:"username"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         SystemRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	LastLoginAt  *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	PersonalTasks  []PersonalTask `gorm:"foreignKey:OwnerID" json:"-"`
	Collaborations []Collaborator `gorm:"foreignKey:UserID" json:"-"`
}
