package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a deadline-bearing entity. Assignee is deliberately a free-form
// string: rows imported from the legacy system may carry a display name
// instead of a user ID, so consumers must validate it before treating it as
// a user reference.
type Task struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Status    string     `gorm:"default:open" json:"status"`
	DueDate   *time.Time `gorm:"index" json:"due_date,omitempty"`
	Assignee  string     `json:"assignee,omitempty"`
	CreatedBy string     `gorm:"size:36" json:"created_by"`
	ProjectID string     `gorm:"size:36;index" json:"project_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
