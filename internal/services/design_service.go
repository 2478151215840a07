// internal/services/design_service.go
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

type DesignService struct {
	db *gorm.DB
}

type CreateDesignRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"min=0"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	AssetKey    string   `json:"asset_key,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateDesignRequest struct {
	Title       string              `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description string              `json:"description,omitempty" validate:"omitempty,min=10"`
	Category    string              `json:"category,omitempty"`
	Price       *float64            `json:"price,omitempty" validate:"omitempty,min=0"`
	PreviewURL  string              `json:"preview_url,omitempty"`
	AssetKey    *string             `json:"asset_key,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Status      models.DesignStatus `json:"status,omitempty"`
}

type DesignSearchParams struct {
	utils.PaginationParams
	CreatorID *uuid.UUID           `json:"creator_id,omitempty"`
	Status    *models.DesignStatus `json:"status,omitempty"`
	PriceMin  *float64             `json:"price_min,omitempty"`
	PriceMax  *float64             `json:"price_max,omitempty"`
	Tags      []string             `json:"tags,omitempty"`
}

func NewDesignService(db *gorm.DB) *DesignService {
	return &DesignService{db: db}
}

func (s *DesignService) Create(creatorID uuid.UUID, req *CreateDesignRequest) (*models.Design, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var creator models.User
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if creator.Status != models.UserStatusActive {
		return nil, ErrForbidden
	}

	if creator.UserType != models.UserTypeArtist {
		return nil, ErrForbidden
	}

	design := &models.Design{
		CreatorID:   creatorID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        pq.StringArray(req.Tags),
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		PreviewURL:  req.PreviewURL,
		Status:      models.DesignStatusDraft,
	}

	if req.AssetKey != "" {
		design.AssetKey = &req.AssetKey
	}

	if err := s.db.Create(design).Error; err != nil {
		return nil, fmt.Errorf("failed to create design: %w", err)
	}

	s.db.Preload("Creator").First(design, "id = ?", design.ID)

	return design, nil
}

func (s *DesignService) Get(id uuid.UUID, viewerID *uuid.UUID) (*models.Design, error) {
	var design models.Design
	if err := s.db.Preload("Creator").First(&design, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Non-active designs are visible to their creator only.
	if design.Status != models.DesignStatusActive {
		if viewerID == nil || *viewerID != design.CreatorID {
			return nil, ErrDesignNotFound
		}
	}

	if viewerID == nil || *viewerID != design.CreatorID {
		go s.incrementViewCount(id)
	}

	return &design, nil
}

func (s *DesignService) Update(id uuid.UUID, creatorID uuid.UUID, req *UpdateDesignRequest) (*models.Design, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var design models.Design
	if err := s.db.First(&design, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if design.CreatorID != creatorID {
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
	if req.Price != nil {
		updates["price"] = decimal.NewFromFloat(*req.Price).Round(2)
	}
	if req.PreviewURL != "" {
		updates["preview_url"] = req.PreviewURL
	}
	if req.AssetKey != nil {
		updates["asset_key"] = *req.AssetKey
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&design).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update design: %w", err)
	}

	s.db.Preload("Creator").First(&design, "id = ?", id)

	return &design, nil
}

func (s *DesignService) Delete(id uuid.UUID, creatorID uuid.UUID) error {
	var design models.Design
	if err := s.db.First(&design, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDesignNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if design.CreatorID != creatorID {
		return ErrNotOwner
	}

	// A sold design stays on record; the purchase ledger references it.
	var salesCount int64
	if err := s.db.Model(&models.Purchase{}).
		Where("design_id = ? AND status = ?", id, models.PurchaseStatusCompleted).
		Count(&salesCount).Error; err != nil {
		return fmt.Errorf("failed to check sales: %w", err)
	}

	if salesCount > 0 {
		return errors.New("cannot delete design with completed sales")
	}

	if err := s.db.Delete(&design).Error; err != nil {
		return fmt.Errorf("failed to delete design: %w", err)
	}

	return nil
}

func (s *DesignService) Search(params DesignSearchParams) ([]models.Design, int64, error) {
	query := s.db.Model(&models.Design{}).Preload("Creator")

	if params.CreatorID != nil {
		query = query.Where("creator_id = ?", *params.CreatorID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		query = query.Where("status = ?", models.DesignStatusActive)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", pq.Array(params.Tags))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count designs: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "price", "like_count", "view_count"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var designs []models.Design
	if err := query.Find(&designs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch designs: %w", err)
	}

	return designs, total, nil
}

func (s *DesignService) GetPopular(limit int) ([]models.Design, error) {
	var designs []models.Design
	if err := s.db.Where("status = ?", models.DesignStatusActive).
		Order("like_count DESC, view_count DESC").
		Limit(limit).
		Preload("Creator").
		Find(&designs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popular designs: %w", err)
	}

	return designs, nil
}

func (s *DesignService) incrementViewCount(designID uuid.UUID) {
	s.db.Model(&models.Design{}).Where("id = ?", designID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
}
