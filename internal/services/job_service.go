// internal/services/job_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/utils"
)

type JobService struct {
	db *gorm.DB
}

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required"`
	Budget      float64  `json:"budget" validate:"min=0"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateJobRequest struct {
	Title       string           `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description string           `json:"description,omitempty" validate:"omitempty,min=10"`
	Category    string           `json:"category,omitempty"`
	Budget      *float64         `json:"budget,omitempty" validate:"omitempty,min=0"`
	Tags        []string         `json:"tags,omitempty"`
	Status      models.JobStatus `json:"status,omitempty"`
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

func (s *JobService) Create(posterID uuid.UUID, req *CreateJobRequest) (*models.JobPost, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	job := &models.JobPost{
		PosterID:    posterID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        pq.StringArray(req.Tags),
		Budget:      decimal.NewFromFloat(req.Budget).Round(2),
		Status:      models.JobStatusOpen,
	}

	if err := s.db.Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job post: %w", err)
	}

	s.db.Preload("Poster").First(job, "id = ?", job.ID)

	return job, nil
}

func (s *JobService) Get(id uuid.UUID) (*models.JobPost, error) {
	var job models.JobPost
	if err := s.db.Preload("Poster").First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &job, nil
}

func (s *JobService) Update(id uuid.UUID, posterID uuid.UUID, req *UpdateJobRequest) (*models.JobPost, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var job models.JobPost
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if job.PosterID != posterID {
		return nil, ErrNotOwner
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Budget != nil {
		updates["budget"] = decimal.NewFromFloat(*req.Budget).Round(2)
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&job).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update job post: %w", err)
	}

	s.db.Preload("Poster").First(&job, "id = ?", id)

	return &job, nil
}

func (s *JobService) Delete(id uuid.UUID, posterID uuid.UUID) error {
	var job models.JobPost
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if job.PosterID != posterID {
		return ErrNotOwner
	}

	if err := s.db.Delete(&job).Error; err != nil {
		return fmt.Errorf("failed to delete job post: %w", err)
	}

	return nil
}

func (s *JobService) Search(params utils.PaginationParams) ([]models.JobPost, int64, error) {
	query := s.db.Model(&models.JobPost{}).
		Where("status = ?", models.JobStatusOpen).
		Preload("Poster")

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count job posts: %w", err)
	}

	allowedSortFields := []string{"created_at", "budget", "title"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var jobs []models.JobPost
	if err := query.Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch job posts: %w", err)
	}

	return jobs, total, nil
}
