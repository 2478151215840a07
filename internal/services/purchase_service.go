// internal/services/purchase_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/billing"
	"github.com/designly/marketplace-backend/internal/config"
	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/utils"
)

// PurchaseService writes the append-only purchase ledger. A row is created
// once per confirmed payment and is never updated afterwards.
type PurchaseService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	notificationService *NotificationService
}

type RecordPurchaseRequest struct {
	DesignID uuid.UUID `json:"design_id" validate:"required"`
	TxRef    string    `json:"tx_ref" validate:"required,tx_hash"`
	// Amount is optional; rails that validate the charged amount themselves
	// may omit it, in which case the design's listed price is used.
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,min=0"`
}

func NewPurchaseService(db *gorm.DB, cfg *config.Config, notificationService *NotificationService) *PurchaseService {
	return &PurchaseService{
		db:                  db,
		cfg:                 cfg,
		notificationService: notificationService,
	}
}

// Record verifies the inputs, computes the fee split under the rail's
// configured percent, and writes a single completed purchase row. The fee
// percent used is persisted on the row so later configuration changes never
// rewrite history.
func (s *PurchaseService) Record(buyerID uuid.UUID, designID uuid.UUID, amount *decimal.Decimal, rail, txRef string) (*models.Purchase, error) {
	if txRef == "" {
		// An on-chain or processor-confirmed payment always carries external
		// proof; self-reported completions are rejected before any lookup.
		return nil, ErrMissingReference
	}

	var design models.Design
	if err := s.db.First(&design, "id = ?", designID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	gross := design.Price
	if amount != nil {
		gross = *amount
	}

	feePercent := decimal.NewFromFloat(s.cfg.FeePercentForRail(rail))
	breakdown, err := billing.ComputeFee(gross, feePercent)
	if err != nil {
		return nil, err
	}

	method := models.PaymentMethodCrypto
	network := rail
	if rail == "card" {
		method = models.PaymentMethodCard
		network = "stripe"
	}

	now := time.Now()
	purchase := &models.Purchase{
		BuyerID:         buyerID,
		DesignID:        designID,
		Amount:          gross.Round(2),
		PlatformFee:     breakdown.Fee,
		CreatorPayout:   breakdown.Payout,
		FeePercent:      feePercent,
		PaymentMethod:   method,
		PaymentNetwork:  network,
		TransactionHash: txRef,
		Status:          models.PurchaseStatusCompleted,
		ProcessedAt:     &now,
	}

	if err := s.db.Create(purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePurchase
		}
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	// Notification fan-out is best effort; failures are logged and never
	// reach the purchaser.
	if s.notificationService != nil {
		go func() {
			if err := s.notificationService.SendPurchaseReceipt(purchase.ID); err != nil {
				logrus.WithError(err).WithField("purchase_id", purchase.ID).
					Warn("purchase receipt notification failed")
			}
			if err := s.notificationService.SendSaleNotification(purchase.ID); err != nil {
				logrus.WithError(err).WithField("purchase_id", purchase.ID).
					Warn("sale notification failed")
			}
		}()
	}

	return purchase, nil
}

func (s *PurchaseService) GetHistory(userID uuid.UUID, params utils.PaginationParams) ([]models.Purchase, int64, error) {
	query := s.db.Model(&models.Purchase{}).
		Where("buyer_id = ?", userID).
		Preload("Design")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var purchases []models.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchases: %w", err)
	}

	return purchases, total, nil
}

// GetBalance sums an artist's payouts across completed sales. Payouts were
// fixed at transaction time, so this is a plain sum over the ledger rather
// than a recomputation under the current fee configuration.
func (s *PurchaseService) GetBalance(artistID uuid.UUID) (map[string]interface{}, error) {
	var totalEarnings decimal.Decimal

	err := s.db.Model(&models.Purchase{}).
		Joins("JOIN designs ON designs.id = purchases.design_id").
		Where("designs.creator_id = ? AND purchases.status = ?",
			artistID, models.PurchaseStatusCompleted).
		Select("COALESCE(SUM(purchases.creator_payout), 0)").
		Scan(&totalEarnings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum earnings: %w", err)
	}

	return map[string]interface{}{
		"total_earnings":    totalEarnings,
		"available_balance": totalEarnings,
		"minimum_payout":    s.cfg.Payment.MinimumPayout,
		"currency":          "USD",
	}, nil
}
