package project

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
)

var ErrProjectNotFound = errors.New("project not found")

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

type CreateRequest struct {
	Name        string
	Description string
	EndDate     *time.Time
	CreatedBy   string
	TeamIDs     []string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Project, error) {
	p := models.Project{
		Name:        req.Name,
		Description: req.Description,
		EndDate:     req.EndDate,
		CreatedBy:   req.CreatedBy,
	}

	if len(req.TeamIDs) > 0 {
		var team []models.User
		if err := s.db.WithContext(ctx).Where("id IN ?", req.TeamIDs).Find(&team).Error; err != nil {
			return models.Project{}, err
		}
		p.Team = team
	}

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	if err := s.db.WithContext(ctx).Preload("Team").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Project, error) {
	var list []models.Project
	q := s.db.WithContext(ctx).Preload("Team").Order("created_at DESC")
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
