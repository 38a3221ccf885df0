package models

import "time"

type Group struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	AdminID   uint64    `gorm:"not null" json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Admin         User           `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Collaborators []Collaborator `gorm:"foreignKey:GroupID" json:"collaborators,omitempty"`
	Tasks         []GroupTask    `gorm:"foreignKey:GroupID" json:"tasks,omitempty"`
}
