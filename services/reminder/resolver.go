package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
)

// Candidate is a possibly-invalid recipient reference. Task assignees in
// particular can carry legacy free-form values, so references are tagged
// valid/invalid up front instead of being format-checked piecemeal later.
type Candidate struct {
	Raw   string
	ID    string
	Valid bool
}

func newCandidate(raw string) Candidate {
	if _, err := uuid.Parse(raw); err != nil {
		return Candidate{Raw: raw}
	}
	return Candidate{Raw: raw, ID: raw, Valid: true}
}

// Resolver computes the deduplicated set of users to notify for an entity.
type Resolver struct {
	db       *gorm.DB
	log      *zap.Logger
	fallback string
	timeout  time.Duration
}

func NewResolver(db *gorm.DB, log *zap.Logger, fallback string, timeout time.Duration) *Resolver {
	return &Resolver{db: db, log: log, fallback: fallback, timeout: timeout}
}

// Resolve returns the recipients for an entity: creator ∪ team for a project,
// {assignee, creator} for a task. Invalid references are skipped, duplicates
// collapse, and unknown users are dropped. An empty set falls back to the
// configured fallback recipient, or to no notification at all.
func (r *Resolver) Resolve(ctx context.Context, ent Entity) []models.User {
	candidates := r.candidates(ent)

	ids := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if !c.Valid {
			r.log.Debug("skipping invalid recipient reference",
				zap.String("kind", string(ent.Kind)),
				zap.String("entity_id", ent.ID),
				zap.String("raw", c.Raw))
			continue
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		ids = append(ids, c.ID)
	}

	if len(ids) == 0 {
		// The fallback exists for tasks with legacy assignee values; a project
		// with no resolvable creator or team produces no notifications.
		if ent.Kind != KindTask || r.fallback == "" {
			r.log.Info("no resolvable recipients, skipping entity",
				zap.String("kind", string(ent.Kind)),
				zap.String("entity_id", ent.ID))
			return nil
		}
		ids = append(ids, r.fallback)
	}

	recipients := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, err := r.lookup(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				r.log.Debug("recipient not found, dropping",
					zap.String("user_id", id),
					zap.String("entity_id", ent.ID))
			} else {
				r.log.Warn("recipient lookup failed, dropping",
					zap.String("user_id", id),
					zap.String("entity_id", ent.ID),
					zap.Error(err))
			}
			continue
		}
		recipients = append(recipients, u)
	}
	return recipients
}

func (r *Resolver) candidates(ent Entity) []Candidate {
	switch ent.Kind {
	case KindProject:
		out := []Candidate{newCandidate(ent.Project.CreatedBy)}
		for _, member := range ent.Project.Team {
			out = append(out, newCandidate(member.ID))
		}
		return out
	case KindTask:
		return []Candidate{
			newCandidate(ent.Task.Assignee),
			newCandidate(ent.Task.CreatedBy),
		}
	default:
		return nil
	}
}

func (r *Resolver) lookup(ctx context.Context, id string) (models.User, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, err
}
