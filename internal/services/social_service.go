// internal/services/social_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/optimistic"
	"github.com/designly/marketplace-backend/internal/utils"
)

// SocialService owns the like and follow edges and the counter policies
// around them. Likes keep a denormalized count on the design that is
// overwritten with an authoritative recount after every edge mutation;
// increments under concurrent togglers are lossy, a recount self-heals any
// drift. Follows persist no counter at all and are always counted live.
type SocialService struct {
	db *gorm.DB
}

type LikeState struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type FollowState struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

// ToggleLike flips the (actor, design) like edge and reconciles the cached
// like count. The response state is flipped optimistically before the edge
// write; on success the count is replaced by the recount, on failure the
// flip is rolled back and the error surfaces.
func (s *SocialService) ToggleLike(actorID uuid.UUID, designID uuid.UUID) (LikeState, error) {
	var design models.Design
	if err := s.db.First(&design, "id = ?", designID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LikeState{}, ErrDesignNotFound
		}
		return LikeState{}, fmt.Errorf("database error: %w", err)
	}

	wasSet, err := s.hasLike(actorID, designID)
	if err != nil {
		return LikeState{}, err
	}

	state := LikeState{Liked: wasSet, LikeCount: design.LikeCount}

	err = optimistic.Run(optimistic.Mutation{
		Apply: func() {
			state.Liked = !wasSet
			if wasSet {
				state.LikeCount--
			} else {
				state.LikeCount++
			}
		},
		Rollback: func() {
			state.Liked = wasSet
			if wasSet {
				state.LikeCount++
			} else {
				state.LikeCount--
			}
		},
		Effect: func() error {
			if wasSet {
				return s.deleteLike(actorID, designID)
			}
			return s.insertLike(actorID, designID)
		},
	})
	if err != nil {
		return state, err
	}

	// Authoritative recount: overwrite the cached counter with the true edge
	// count instead of incrementing it.
	count, err := s.recountLikes(designID)
	if err != nil {
		return state, err
	}
	state.LikeCount = count

	return state, nil
}

// ToggleFollow flips the (follower, artist) edge. There is no stored
// counter to reconcile; on failure the optimistic flip is rolled back
// exactly rather than re-queried.
func (s *SocialService) ToggleFollow(actorID uuid.UUID, artistID uuid.UUID) (FollowState, error) {
	if actorID == artistID {
		return FollowState{}, ErrSelfTarget
	}

	var artist models.User
	if err := s.db.First(&artist, "id = ?", artistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FollowState{}, ErrUserNotFound
		}
		return FollowState{}, fmt.Errorf("database error: %w", err)
	}

	wasSet, err := s.hasFollow(actorID, artistID)
	if err != nil {
		return FollowState{}, err
	}

	liveCount, err := s.FollowerCount(artistID)
	if err != nil {
		return FollowState{}, err
	}

	state := FollowState{Following: wasSet, FollowerCount: liveCount}

	err = optimistic.Run(optimistic.Mutation{
		Apply: func() {
			state.Following = !wasSet
			if wasSet {
				state.FollowerCount--
			} else {
				state.FollowerCount++
			}
		},
		Rollback: func() {
			state.Following = wasSet
			if wasSet {
				state.FollowerCount++
			} else {
				state.FollowerCount--
			}
		},
		Effect: func() error {
			if wasSet {
				return s.deleteFollow(actorID, artistID)
			}
			return s.insertFollow(actorID, artistID)
		},
	})
	if err != nil {
		return state, err
	}

	return state, nil
}

// FollowerCount is always a live count over the edges.
func (s *SocialService) FollowerCount(artistID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("artist_id = ?", artistID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (s *SocialService) IsLiked(actorID uuid.UUID, designID uuid.UUID) (bool, error) {
	return s.hasLike(actorID, designID)
}

func (s *SocialService) IsFollowing(actorID uuid.UUID, artistID uuid.UUID) (bool, error) {
	return s.hasFollow(actorID, artistID)
}

func (s *SocialService) GetFollowers(artistID uuid.UUID, params utils.PaginationParams) ([]models.Follow, int64, error) {
	query := s.db.Model(&models.Follow{}).
		Where("artist_id = ?", artistID).
		Preload("Follower")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count followers: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var follows []models.Follow
	if err := query.Find(&follows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch followers: %w", err)
	}

	return follows, total, nil
}

// Edge helpers. Duplicate inserts and deletes of absent rows are no-ops:
// the uniqueness constraint makes a racing double insert harmless, only
// genuine backend errors propagate.

func (s *SocialService) hasLike(userID, designID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND design_id = ?", userID, designID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *SocialService) insertLike(userID, designID uuid.UUID) error {
	like := &models.Like{UserID: userID, DesignID: designID}
	if err := s.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

func (s *SocialService) deleteLike(userID, designID uuid.UUID) error {
	err := s.db.
		Where("user_id = ? AND design_id = ?", userID, designID).
		Delete(&models.Like{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (s *SocialService) hasFollow(followerID, artistID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND artist_id = ?", followerID, artistID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *SocialService) insertFollow(followerID, artistID uuid.UUID) error {
	follow := &models.Follow{FollowerID: followerID, ArtistID: artistID}
	if err := s.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to insert follow: %w", err)
	}
	return nil
}

func (s *SocialService) deleteFollow(followerID, artistID uuid.UUID) error {
	err := s.db.
		Where("follower_id = ? AND artist_id = ?", followerID, artistID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

// recountLikes derives the authoritative count from the edges and writes it
// onto the design row.
func (s *SocialService) recountLikes(designID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("design_id = ?", designID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to recount likes: %w", err)
	}

	err = s.db.Model(&models.Design{}).
		Where("id = ?", designID).
		UpdateColumn("like_count", count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to store like count: %w", err)
	}

	return count, nil
}
