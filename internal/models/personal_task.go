package models

import "time"

// Task statuses are free-form strings chosen by the client. These are the
// values the frontends send; only group-task completion forces one.
const (
	StatusPending   = "pendiente"
	StatusCompleted = "completada"
)

type PersonalTask struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Status      string     `gorm:"type:varchar(50);not null;default:'pendiente'" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Category    string     `gorm:"type:varchar(100)" json:"category"`
	OwnerID     uint64     `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
