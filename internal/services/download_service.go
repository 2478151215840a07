// internal/services/download_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/models"
)

// URLSigner issues time-boxed capability URLs for protected objects.
// StorageService is the production implementation.
type URLSigner interface {
	SignURL(key string, expiration time.Duration) (string, error)
}

// DownloadService gates protected asset access behind an entitlement check
// and hands out short-lived signed URLs. URLs are never cached; every
// issuance re-checks entitlement, and a signing failure is surfaced rather
// than degraded to a public URL.
type DownloadService struct {
	db           *gorm.DB
	entitlements *EntitlementService
	signer       URLSigner
	urlTTL       time.Duration
}

func NewDownloadService(db *gorm.DB, entitlements *EntitlementService, signer URLSigner, urlTTL time.Duration) *DownloadService {
	return &DownloadService{
		db:           db,
		entitlements: entitlements,
		signer:       signer,
		urlTTL:       urlTTL,
	}
}

// IssueDownload returns a signed URL for the design's asset, valid for the
// configured window (5 minutes by default).
func (s *DownloadService) IssueDownload(actorID *uuid.UUID, designID uuid.UUID) (string, error) {
	entitlement, err := s.entitlements.Check(actorID, designID)
	if err != nil {
		return "", err
	}

	if !entitlement.Entitled {
		return "", ErrForbidden
	}

	var design models.Design
	if err := s.db.First(&design, "id = ?", designID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDesignNotFound
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if design.AssetKey == nil || *design.AssetKey == "" {
		return "", ErrNoAsset
	}

	url, err := s.signer.SignURL(*design.AssetKey, s.urlTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	return url, nil
}
