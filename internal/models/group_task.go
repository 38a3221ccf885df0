package models

import "time"

type GroupTask struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Status      string     `gorm:"type:varchar(50);not null;default:'pendiente'" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Category    string     `gorm:"type:varchar(100)" json:"category"`
	GroupID     uint64     `gorm:"not null;index" json:"group_id"`
	CreatedByID uint64     `gorm:"not null;index" json:"created_by_id"`
	// AssignedToID must reference a collaborator of the same group at
	// assignment time.
	AssignedToID *uint64 `gorm:"index" json:"assigned_to_id"`
	// CompletedByID and CompletedAt are written together by the complete
	// operation and by nothing else.
	CompletedByID *uint64    `json:"completed_by_id"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Group     Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	CreatedBy User  `gorm:"foreignKey:CreatedByID" json:"-"`
}
