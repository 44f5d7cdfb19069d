package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a deadline-bearing entity. The reminder subsystem only reads it;
// all mutation happens through the CRUD layer.
type Project struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description,omitempty"`
	EndDate     *time.Time `gorm:"index" json:"end_date,omitempty"`
	CreatedBy   string     `gorm:"size:36" json:"created_by"`
	Team        []User     `gorm:"many2many:project_members" json:"team,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
