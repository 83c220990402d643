package services

import (
	"github.com/justsurfingit/voice-job-matcher/internal/models"
	"gorm.io/gorm"
)

// RunService keeps an audit trail of pipeline runs. With a nil DB it
// accepts records and remembers nothing.
type RunService struct {
	DB *gorm.DB
}

func NewRunService(db *gorm.DB) *RunService {
	return &RunService{DB: db}
}

func (s *RunService) Record(run *models.PipelineRun) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Create(run).Error
}

// Recent returns the latest runs, newest first.
func (s *RunService) Recent(limit int) ([]models.PipelineRun, error) {
	runs := []models.PipelineRun{}
	if s.DB == nil {
		return runs, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	err := s.DB.Order("created_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}
