// internal/models/design.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Design is a sellable entity. AssetKey points at the protected download in
// object storage; it is nil for designs without a purchasable file.
// LikeCount is a cache of count(likes where design_id = ID) and is only
// written by the recount in SocialService, never incremented in place.
type Design struct {
	BaseModel
	CreatorID   uuid.UUID       `json:"creator_id" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Tags        pq.StringArray  `json:"tags" gorm:"type:text[]"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	AssetKey    *string         `json:"asset_key,omitempty" gorm:"size:512"`
	PreviewURL  string          `json:"preview_url" gorm:"size:512"`
	Status      DesignStatus    `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	LikeCount   int64           `json:"like_count" gorm:"default:0"`
	ViewCount   int64           `json:"view_count" gorm:"default:0"`

	// Relationships
	Creator   User       `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Purchases []Purchase `json:"purchases,omitempty" gorm:"foreignKey:DesignID"`
}
