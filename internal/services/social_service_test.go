// internal/services/social_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/models"
)

func designLikeCount(t *testing.T, db *gorm.DB, designID uuid.UUID) int64 {
	t.Helper()
	var design models.Design
	require.NoError(t, db.First(&design, "id = ?", designID).Error)
	return design.LikeCount
}

func TestToggleLike_SetAndClear(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	artist := seedUser(t, db, "artist30", models.UserTypeArtist)
	fan := seedUser(t, db, "fan30", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "10.00")

	state, err := svc.ToggleLike(fan.ID, design.ID)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.EqualValues(t, 1, state.LikeCount)
	assert.EqualValues(t, 1, designLikeCount(t, db, design.ID))

	state, err = svc.ToggleLike(fan.ID, design.ID)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.EqualValues(t, 0, state.LikeCount)
	assert.EqualValues(t, 0, designLikeCount(t, db, design.ID))
}

func TestToggleLike_DesignNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	fan := seedUser(t, db, "fan31", models.UserTypeBuyer)
	_, err := svc.ToggleLike(fan.ID, uuid.New())
	assert.ErrorIs(t, err, ErrDesignNotFound)
}

// A drifted cached counter is overwritten with the true edge count, not
// nudged by one.
func TestToggleLike_RecountHealsDriftedCounter(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	artist := seedUser(t, db, "artist32", models.UserTypeArtist)
	fan := seedUser(t, db, "fan32", models.UserTypeBuyer)
	other := seedUser(t, db, "fan33", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "10.00")

	_, err := svc.ToggleLike(other.ID, design.ID)
	require.NoError(t, err)

	// Corrupt the cache to simulate drift from a missed update.
	require.NoError(t, db.Model(&models.Design{}).
		Where("id = ?", design.ID).
		UpdateColumn("like_count", 40).Error)

	state, err := svc.ToggleLike(fan.ID, design.ID)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.EqualValues(t, 2, state.LikeCount)
	assert.EqualValues(t, 2, designLikeCount(t, db, design.ID))
}

func TestToggleLike_DoubleToggleSettlesClean(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	artist := seedUser(t, db, "artist34", models.UserTypeArtist)
	fan := seedUser(t, db, "fan34", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "10.00")

	for i := 0; i < 4; i++ {
		_, err := svc.ToggleLike(fan.ID, design.ID)
		require.NoError(t, err)
	}

	var edges int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("design_id = ?", design.ID).Count(&edges).Error)
	assert.Zero(t, edges)
	assert.EqualValues(t, 0, designLikeCount(t, db, design.ID))
}

func TestToggleFollow_SetAndClear(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	artist := seedUser(t, db, "artist35", models.UserTypeArtist)
	fan := seedUser(t, db, "fan35", models.UserTypeBuyer)

	state, err := svc.ToggleFollow(fan.ID, artist.ID)
	require.NoError(t, err)
	assert.True(t, state.Following)
	assert.EqualValues(t, 1, state.FollowerCount)

	state, err = svc.ToggleFollow(fan.ID, artist.ID)
	require.NoError(t, err)
	assert.False(t, state.Following)
	assert.EqualValues(t, 0, state.FollowerCount)
}

func TestToggleFollow_SelfFollowRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	artist := seedUser(t, db, "artist36", models.UserTypeArtist)
	_, err := svc.ToggleFollow(artist.ID, artist.ID)
	assert.ErrorIs(t, err, ErrSelfTarget)
}

func TestToggleFollow_ArtistNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	fan := seedUser(t, db, "fan37", models.UserTypeBuyer)
	_, err := svc.ToggleFollow(fan.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowerCount_AlwaysLive(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	artist := seedUser(t, db, "artist38", models.UserTypeArtist)
	for i, name := range []string{"fan38a", "fan38b", "fan38c"} {
		fan := seedUser(t, db, name, models.UserTypeBuyer)
		_, err := svc.ToggleFollow(fan.ID, artist.ID)
		require.NoError(t, err, "follower %d", i)
	}

	count, err := svc.FollowerCount(artist.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// Removing an edge directly is reflected immediately; there is no
	// stored counter to go stale.
	require.NoError(t, db.Where("artist_id = ?", artist.ID).
		Delete(&models.Follow{}).Error)

	count, err = svc.FollowerCount(artist.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIsLikedAndIsFollowing(t *testing.T) {
	db := newTestDB(t)
	svc := NewSocialService(db)

	artist := seedUser(t, db, "artist39", models.UserTypeArtist)
	fan := seedUser(t, db, "fan39", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "10.00")

	liked, err := svc.IsLiked(fan.ID, design.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = svc.ToggleLike(fan.ID, design.ID)
	require.NoError(t, err)

	liked, err = svc.IsLiked(fan.ID, design.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	following, err := svc.IsFollowing(fan.ID, artist.ID)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = svc.ToggleFollow(fan.ID, artist.ID)
	require.NoError(t, err)

	following, err = svc.IsFollowing(fan.ID, artist.ID)
	require.NoError(t, err)
	assert.True(t, following)
}
