// internal/models/job.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type JobPost struct {
	BaseModel
	PosterID    uuid.UUID       `json:"poster_id" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Tags        pq.StringArray  `json:"tags" gorm:"type:text[]"`
	Budget      decimal.Decimal `json:"budget" gorm:"type:decimal(10,2)"`
	Status      JobStatus       `json:"status" gorm:"type:varchar(20);default:'open';index"`

	Poster User `json:"poster,omitempty" gorm:"foreignKey:PosterID"`
}
