package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
)

// Scanner finds entities whose deadline falls on the calendar day now+offset.
type Scanner struct {
	db  *gorm.DB
	log *zap.Logger
	loc *time.Location
}

func NewScanner(db *gorm.DB, log *zap.Logger, loc *time.Location) *Scanner {
	return &Scanner{db: db, log: log, loc: loc}
}

// Window returns the inclusive [start, end] range covering the whole calendar
// day `off.Days` days after now, in the scanner's location.
func (s *Scanner) Window(now time.Time, off Offset) (time.Time, time.Time) {
	target := now.In(s.loc).AddDate(0, 0, off.Days)
	y, m, d := target.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// Scan returns every entity of the given kind whose deadline falls inside the
// offset's day window. Entities with no deadline set never match.
func (s *Scanner) Scan(ctx context.Context, now time.Time, off Offset, kind Kind) ([]Entity, error) {
	start, end := s.Window(now, off)
	s.log.Debug("scanning deadline window",
		zap.String("kind", string(kind)),
		zap.Int("offset_days", off.Days),
		zap.Time("start", start),
		zap.Time("end", end))

	switch kind {
	case KindProject:
		var projects []models.Project
		err := s.db.WithContext(ctx).
			Preload("Team").
			Where("end_date BETWEEN ? AND ?", start, end).
			Find(&projects).Error
		if err != nil {
			return nil, fmt.Errorf("scan projects: %w", err)
		}
		entities := make([]Entity, 0, len(projects))
		for i := range projects {
			p := &projects[i]
			entities = append(entities, Entity{
				Kind:    KindProject,
				ID:      p.ID,
				Name:    p.Name,
				Due:     *p.EndDate,
				Project: p,
			})
		}
		return entities, nil

	case KindTask:
		var tasks []models.Task
		err := s.db.WithContext(ctx).
			Where("due_date BETWEEN ? AND ?", start, end).
			Find(&tasks).Error
		if err != nil {
			return nil, fmt.Errorf("scan tasks: %w", err)
		}
		entities := make([]Entity, 0, len(tasks))
		for i := range tasks {
			t := &tasks[i]
			entities = append(entities, Entity{
				Kind: KindTask,
				ID:   t.ID,
				Name: t.Title,
				Due:  *t.DueDate,
				Task: t,
			})
		}
		return entities, nil

	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}
