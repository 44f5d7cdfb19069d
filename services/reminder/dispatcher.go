package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
	"github.com/prathameshp107/ClinLabOps-sub003/models/channel"
)

// Dispatcher delivers one reminder to one recipient over both channels. The
// in-app record (created through the Store) and the email are independent
// failure domains: an email error never rolls back the in-app notification
// and never stops the cycle.
type Dispatcher struct {
	db      *gorm.DB
	store   *Store
	email   channel.Channel
	log     *zap.Logger
	timeout time.Duration
}

func NewDispatcher(db *gorm.DB, store *Store, email channel.Channel, log *zap.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{db: db, store: store, email: email, log: log, timeout: timeout}
}

// Deliver creates the in-app notification and, when the recipient opted in,
// attempts the email send. It reports whether a new notification was created.
func (d *Dispatcher) Deliver(ctx context.Context, ent Entity, recipient models.User, off Offset) bool {
	n := buildNotification(ent, recipient, off)

	n, created, err := d.store.CreateIfAbsent(ctx, n)
	if err != nil {
		storeFailures.Inc()
		d.log.Error("failed to persist notification",
			zap.String("recipient_id", recipient.ID),
			zap.String("entity_id", ent.ID),
			zap.Int("offset_days", off.Days),
			zap.Error(err))
		return false
	}
	if !created {
		duplicatesSuppressed.Inc()
		return false
	}
	notificationsCreated.Inc()

	if !recipient.EmailNotifications {
		d.logEmail(ctx, n.ID, recipient.Email, models.EmailSkipped, nil)
		return true
	}

	if err := d.sendEmail(ctx, n, recipient); err != nil {
		emailsFailed.Inc()
		d.log.Error("failed to send reminder email",
			zap.String("recipient", recipient.Email),
			zap.String("entity_id", ent.ID),
			zap.String("entity_name", ent.Name),
			zap.Int("offset_days", off.Days),
			zap.Error(err))
		d.logEmail(ctx, n.ID, recipient.Email, models.EmailFailed, err)
		return true
	}
	emailsSent.Inc()
	d.logEmail(ctx, n.ID, recipient.Email, models.EmailSent, nil)
	return true
}

func (d *Dispatcher) sendEmail(ctx context.Context, n models.Notification, recipient models.User) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	msg := channel.Message{
		Title:    n.Title,
		Content:  n.Message,
		Priority: n.Priority,
		Meta: map[string]string{
			"to":      recipient.Email,
			"subject": n.Title,
		},
	}
	if err := d.email.Validate(msg.Meta); err != nil {
		return err
	}
	if err := d.email.Prepare(ctx, &msg); err != nil {
		return err
	}
	return d.email.Send(ctx, msg)
}

func (d *Dispatcher) logEmail(ctx context.Context, notificationID, recipient string, status models.EmailStatus, sendErr error) {
	entry := models.EmailLog{
		NotificationID: notificationID,
		Recipient:      recipient,
		Status:         status,
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	}
	if err := d.db.WithContext(ctx).Create(&entry).Error; err != nil {
		d.log.Warn("failed to write email log", zap.Error(err))
	}
}

func buildNotification(ent Entity, recipient models.User, off Offset) models.Notification {
	var noun string
	switch ent.Kind {
	case KindProject:
		noun = "Project"
	case KindTask:
		noun = "Task"
	}

	priority := "medium"
	if off.Days <= 1 {
		priority = "high"
	}

	return models.Notification{
		RecipientID: recipient.ID,
		Title:       fmt.Sprintf("Deadline approaching: %s", ent.Name),
		Message:     fmt.Sprintf("%s %q is due %s (%s).", noun, ent.Name, off.Label, ent.Due.Format("Jan 2, 2006")),
		Type:        "deadline",
		Priority:    priority,
		Category:    string(ent.Kind),
		RelatedKind: string(ent.Kind),
		RelatedID:   ent.ID,
		OffsetDays:  off.Days,
		Metadata: datatypes.JSONMap{
			"entityId":   ent.ID,
			"entityName": ent.Name,
			"offsetDays": off.Days,
		},
	}
}
