package task

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
)

var ErrTaskNotFound = errors.New("task not found")

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

type CreateRequest struct {
	Title     string
	DueDate   *time.Time
	Assignee  string
	CreatedBy string
	ProjectID string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Task, error) {
	t := models.Task{
		Title:     req.Title,
		DueDate:   req.DueDate,
		Assignee:  req.Assignee,
		CreatedBy: req.CreatedBy,
		ProjectID: req.ProjectID,
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, projectID string, limit, offset int) ([]models.Task, error) {
	var list []models.Task
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}
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
