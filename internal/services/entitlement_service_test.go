// internal/services/entitlement_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designly/marketplace-backend/internal/models"
)

func TestEntitlementCheck_AnonymousActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntitlementService(db)

	_, err := svc.Check(nil, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEntitlementCheck_DesignNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntitlementService(db)

	buyer := seedUser(t, db, "buyer1", models.UserTypeBuyer)
	_, err := svc.Check(&buyer.ID, uuid.New())
	assert.ErrorIs(t, err, ErrDesignNotFound)
}

func TestEntitlementCheck_OwnerAlwaysEntitled(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntitlementService(db)

	artist := seedUser(t, db, "artist1", models.UserTypeArtist)
	design := seedDesign(t, db, artist.ID, "49.99")

	entitlement, err := svc.Check(&artist.ID, design.ID)
	require.NoError(t, err)
	assert.True(t, entitlement.Entitled)
	assert.True(t, entitlement.IsOwner)
}

func TestEntitlementCheck_BuyerWithoutPurchase(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntitlementService(db)

	artist := seedUser(t, db, "artist2", models.UserTypeArtist)
	buyer := seedUser(t, db, "buyer2", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "49.99")

	entitlement, err := svc.Check(&buyer.ID, design.ID)
	require.NoError(t, err)
	assert.False(t, entitlement.Entitled)
	assert.False(t, entitlement.IsOwner)
}

func TestEntitlementCheck_CompletedPurchaseEntitles(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntitlementService(db)

	artist := seedUser(t, db, "artist3", models.UserTypeArtist)
	buyer := seedUser(t, db, "buyer3", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "100.00")
	seedCompletedPurchase(t, db, buyer.ID, design.ID, "pi_completed_001")

	entitlement, err := svc.Check(&buyer.ID, design.ID)
	require.NoError(t, err)
	assert.True(t, entitlement.Entitled)
	assert.False(t, entitlement.IsOwner)
}

func TestEntitlementCheck_PendingPurchaseDoesNotEntitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntitlementService(db)

	artist := seedUser(t, db, "artist4", models.UserTypeArtist)
	buyer := seedUser(t, db, "buyer4", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "100.00")

	pending := seedCompletedPurchase(t, db, buyer.ID, design.ID, "pi_pending_001")
	require.NoError(t, db.Model(&models.Purchase{}).
		Where("id = ?", pending.ID).
		Update("status", models.PurchaseStatusPending).Error)

	entitlement, err := svc.Check(&buyer.ID, design.ID)
	require.NoError(t, err)
	assert.False(t, entitlement.Entitled)
}

// A buyer denied on one call must be granted on the next once a purchase
// lands in between; there is no caching layer to go stale.
func TestEntitlementCheck_RecomputedEveryCall(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntitlementService(db)

	artist := seedUser(t, db, "artist5", models.UserTypeArtist)
	buyer := seedUser(t, db, "buyer5", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "25.00")

	entitlement, err := svc.Check(&buyer.ID, design.ID)
	require.NoError(t, err)
	assert.False(t, entitlement.Entitled)

	seedCompletedPurchase(t, db, buyer.ID, design.ID, "pi_between_calls")

	entitlement, err = svc.Check(&buyer.ID, design.ID)
	require.NoError(t, err)
	assert.True(t, entitlement.Entitled)
}
