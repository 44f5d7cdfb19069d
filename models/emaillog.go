package models

import "time"

type EmailStatus string

const (
	EmailSent    EmailStatus = "SENT"
	EmailFailed  EmailStatus = "FAILED"
	EmailSkipped EmailStatus = "SKIPPED"
)

// EmailLog records the outcome of one email delivery attempt for a
// notification. There is no retry machinery behind it; a FAILED row is an
// audit trail entry, not a queue item.
type EmailLog struct {
	ID             uint        `gorm:"primaryKey"`
	NotificationID string      `gorm:"size:36;index"`
	Recipient      string      `gorm:"not null"`
	Status         EmailStatus `gorm:"index"`
	Error          string
	CreatedAt      time.Time
}
