package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Name               string    `json:"name"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Password           string    `json:"-"`
	Role               string    `gorm:"default:member" json:"role"`
	EmailNotifications bool      `gorm:"default:true" json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
