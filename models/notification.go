package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is the in-app record produced by the reminder subsystem. Rows
// are append-only: there is no update or delete path here.
//
// The composite unique index on (recipient_id, related_id, offset_days) is the
// idempotency key. It guarantees at most one notification per recipient per
// entity per deadline offset, even when two reminder cycles overlap.
type Notification struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	RecipientID string            `gorm:"size:36;not null;index;uniqueIndex:idx_notifications_dedup,priority:1" json:"recipient_id"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Type        string            `json:"type"`
	Priority    string            `json:"priority"`
	Category    string            `json:"category"`
	RelatedKind string            `json:"related_kind"`
	RelatedID   string            `gorm:"size:36;uniqueIndex:idx_notifications_dedup,priority:2" json:"related_id"`
	OffsetDays  int               `gorm:"uniqueIndex:idx_notifications_dedup,priority:3" json:"offset_days"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
