// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/utils"
)

type UserService struct {
	db     *gorm.DB
	social *SocialService
}

type UpdateProfileRequest struct {
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

// PublicProfile is the viewer-facing shape of an artist page. The follower
// count is always a live edge count, never a stored column.
type PublicProfile struct {
	User          *models.User `json:"user"`
	FollowerCount int64        `json:"follower_count"`
	Following     bool         `json:"following"`
	DesignCount   int64        `json:"design_count"`
}

func NewUserService(db *gorm.DB, social *SocialService) *UserService {
	return &UserService{db: db, social: social}
}

func (s *UserService) GetPublicProfile(userID uuid.UUID, viewerID *uuid.UUID) (*PublicProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	followerCount, err := s.social.FollowerCount(userID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != nil {
		following, err = s.social.IsFollowing(*viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	var designCount int64
	if err := s.db.Model(&models.Design{}).
		Where("creator_id = ? AND status = ?", userID, models.DesignStatusActive).
		Count(&designCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count designs: %w", err)
	}

	return &PublicProfile{
		User:          &user,
		FollowerCount: followerCount,
		Following:     following,
		DesignCount:   designCount,
	}, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.ProfileData != nil {
		if err := s.db.Model(&user).
			Update("profile_data", models.JSONB(req.ProfileData)).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return &user, nil
}

func (s *UserService) GetFollowers(userID uuid.UUID, params utils.PaginationParams) ([]models.Follow, int64, error) {
	return s.social.GetFollowers(userID, params)
}
