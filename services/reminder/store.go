package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
)

// Store persists notifications and enforces the at-most-once guarantee.
//
// The pre-insert existence check is an optimization; correctness comes from
// the unique index on (recipient_id, related_id, offset_days) plus
// ON CONFLICT DO NOTHING, so two overlapping cycles cannot both insert.
type Store struct {
	db      *gorm.DB
	log     *zap.Logger
	timeout time.Duration
}

func NewStore(db *gorm.DB, log *zap.Logger, timeout time.Duration) *Store {
	return &Store{db: db, log: log, timeout: timeout}
}

var dedupColumns = []clause.Column{
	{Name: "recipient_id"},
	{Name: "related_id"},
	{Name: "offset_days"},
}

// CreateIfAbsent inserts the notification unless one already exists for its
// (recipient, entity, offset) key. It returns the stored notification and
// whether this call created it.
func (s *Store) CreateIfAbsent(ctx context.Context, n models.Notification) (models.Notification, bool, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	existing, err := s.find(ctx, n.RecipientID, n.RelatedID, n.OffsetDays)
	if err == nil {
		s.log.Debug("notification already exists",
			zap.String("recipient_id", n.RecipientID),
			zap.String("related_id", n.RelatedID),
			zap.Int("offset_days", n.OffsetDays))
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Notification{}, false, fmt.Errorf("check notification: %w", err)
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: dedupColumns, DoNothing: true}).
		Create(&n)
	if res.Error != nil {
		return models.Notification{}, false, fmt.Errorf("create notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent cycle; the winner's row is the record.
		existing, err := s.find(ctx, n.RecipientID, n.RelatedID, n.OffsetDays)
		if err != nil {
			return models.Notification{}, false, fmt.Errorf("fetch conflicting notification: %w", err)
		}
		return existing, false, nil
	}
	return n, true, nil
}

func (s *Store) find(ctx context.Context, recipientID, relatedID string, offsetDays int) (models.Notification, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_id = ? AND related_id = ? AND offset_days = ?", recipientID, relatedID, offsetDays).
		First(&n).Error
	return n, err
}

// ListByRecipient returns a recipient's notifications, newest first.
func (s *Store) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	q := s.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
