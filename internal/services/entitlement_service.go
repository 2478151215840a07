// internal/services/entitlement_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/models"
)

// EntitlementService answers whether an actor may access a design's
// protected asset: the creator always may, anyone else needs a completed
// purchase on record. The answer is recomputed on every call; purchases can
// complete between two requests, so nothing here is cached.
type EntitlementService struct {
	db *gorm.DB
}

type Entitlement struct {
	Entitled bool `json:"entitled"`
	IsOwner  bool `json:"is_owner"`
}

func NewEntitlementService(db *gorm.DB) *EntitlementService {
	return &EntitlementService{db: db}
}

// Check resolves the actor's entitlement for a design. A nil actor is an
// anonymous request and short-circuits without touching the store.
func (s *EntitlementService) Check(actorID *uuid.UUID, designID uuid.UUID) (Entitlement, error) {
	if actorID == nil {
		return Entitlement{}, ErrUnauthorized
	}

	var design models.Design
	if err := s.db.First(&design, "id = ?", designID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entitlement{}, ErrDesignNotFound
		}
		return Entitlement{}, fmt.Errorf("database error: %w", err)
	}

	if design.CreatorID == *actorID {
		return Entitlement{Entitled: true, IsOwner: true}, nil
	}

	var count int64
	err := s.db.Model(&models.Purchase{}).
		Where("buyer_id = ? AND design_id = ? AND status = ?",
			*actorID, designID, models.PurchaseStatusCompleted).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return Entitlement{}, fmt.Errorf("database error: %w", err)
	}

	return Entitlement{Entitled: count > 0, IsOwner: false}, nil
}
