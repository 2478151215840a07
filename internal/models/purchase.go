// internal/models/purchase.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an append-only ledger entry. Rows are created once per
// confirmed payment and never mutated afterwards; the fee percent that was
// active at transaction time is persisted so historical payouts stay stable
// when configured rates change.
//
// The composite unique index on (buyer_id, design_id, transaction_hash)
// makes a duplicate submission of the same payment reference a conflict
// instead of a second ledger entry.
type Purchase struct {
	BaseModel
	BuyerID         uuid.UUID       `json:"buyer_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_purchases_buyer_design_tx"`
	DesignID        uuid.UUID       `json:"design_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_purchases_buyer_design_tx"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	PlatformFee     decimal.Decimal `json:"platform_fee" gorm:"type:decimal(10,2);not null"`
	CreatorPayout   decimal.Decimal `json:"creator_payout" gorm:"type:decimal(10,2);not null"`
	FeePercent      decimal.Decimal `json:"fee_percent" gorm:"type:decimal(5,2);not null"`
	PaymentMethod   PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentNetwork  string          `json:"payment_network" gorm:"size:50"`
	TransactionHash string          `json:"transaction_hash" gorm:"size:255;not null;uniqueIndex:idx_purchases_buyer_design_tx"`
	Status          PurchaseStatus  `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt     *time.Time      `json:"processed_at"`

	// Relationships
	Buyer  User   `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Design Design `json:"design,omitempty" gorm:"foreignKey:DesignID"`
}
