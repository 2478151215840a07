// internal/models/social.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Edges are hard-deleted, not soft-deleted: a tombstoned row would still
// occupy the composite unique index and block re-creating the edge.

// Like is a (user, design) edge. The pair is unique; edge existence is the
// source of truth for "liked", designs.like_count is only a cache of it.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_design"`
	DesignID  uuid.UUID `json:"design_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_likes_user_design"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Design Design `json:"design,omitempty" gorm:"foreignKey:DesignID"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Follow is a (follower, artist) edge. No denormalized follower count is
// persisted anywhere; counts are always derived live from these rows.
type Follow struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	FollowerID uuid.UUID `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_follower_artist"`
	ArtistID   uuid.UUID `json:"artist_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_follows_follower_artist"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
	Artist   User `json:"artist,omitempty" gorm:"foreignKey:ArtistID"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
