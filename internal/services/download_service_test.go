// internal/services/download_service_test.go
package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designly/marketplace-backend/internal/models"
)

type fakeSigner struct {
	calls   int
	lastKey string
	lastTTL time.Duration
	err     error
}

func (f *fakeSigner) SignURL(key string, expiration time.Duration) (string, error) {
	f.calls++
	f.lastKey = key
	f.lastTTL = expiration
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://cdn.example.com/%s?sig=abc", key), nil
}

func newDownloadFixture(t *testing.T) (*DownloadService, *fakeSigner, *models.User, *models.User, *models.Design) {
	t.Helper()

	db := newTestDB(t)
	signer := &fakeSigner{}
	svc := NewDownloadService(db, NewEntitlementService(db), signer, 5*time.Minute)

	artist := seedUser(t, db, "artist50", models.UserTypeArtist)
	buyer := seedUser(t, db, "buyer50", models.UserTypeBuyer)
	design := seedDesign(t, db, artist.ID, "20.00")

	return svc, signer, artist, buyer, design
}

func TestIssueDownload_AnonymousActor(t *testing.T) {
	svc, signer, _, _, design := newDownloadFixture(t)

	_, err := svc.IssueDownload(nil, design.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, signer.calls)
}

func TestIssueDownload_NotEntitled(t *testing.T) {
	svc, signer, _, buyer, design := newDownloadFixture(t)

	_, err := svc.IssueDownload(&buyer.ID, design.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, signer.calls)
}

func TestIssueDownload_OwnerGetsSignedURL(t *testing.T) {
	svc, signer, artist, _, design := newDownloadFixture(t)

	url, err := svc.IssueDownload(&artist.ID, design.ID)
	require.NoError(t, err)
	assert.Contains(t, url, *design.AssetKey)
	assert.Equal(t, *design.AssetKey, signer.lastKey)
	assert.Equal(t, 5*time.Minute, signer.lastTTL)
}

func TestIssueDownload_PurchaserGetsSignedURL(t *testing.T) {
	svc, _, _, buyer, design := newDownloadFixture(t)
	seedCompletedPurchase(t, svc.db, buyer.ID, design.ID, "pi_download_ok")

	url, err := svc.IssueDownload(&buyer.ID, design.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestIssueDownload_NoAsset(t *testing.T) {
	svc, signer, artist, _, design := newDownloadFixture(t)

	require.NoError(t, svc.db.Model(&models.Design{}).
		Where("id = ?", design.ID).
		Update("asset_key", nil).Error)

	_, err := svc.IssueDownload(&artist.ID, design.ID)
	assert.ErrorIs(t, err, ErrNoAsset)
	assert.Zero(t, signer.calls)
}

// A storage outage surfaces as a signing failure; there is no public URL
// fallback to leak the asset through.
func TestIssueDownload_SigningFailure(t *testing.T) {
	svc, signer, artist, _, design := newDownloadFixture(t)
	signer.err = errors.New("s3 unavailable")

	url, err := svc.IssueDownload(&artist.ID, design.ID)
	assert.ErrorIs(t, err, ErrSigningFailed)
	assert.Empty(t, url)
}

// Every issuance runs the entitlement check again; revoking the purchase
// between calls revokes access.
func TestIssueDownload_EntitlementRecheckedPerIssuance(t *testing.T) {
	svc, signer, _, buyer, design := newDownloadFixture(t)
	purchase := seedCompletedPurchase(t, svc.db, buyer.ID, design.ID, "pi_revoked_later")

	_, err := svc.IssueDownload(&buyer.ID, design.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, signer.calls)

	require.NoError(t, svc.db.Model(&models.Purchase{}).
		Where("id = ?", purchase.ID).
		Update("status", models.PurchaseStatusRefunded).Error)

	_, err = svc.IssueDownload(&buyer.ID, design.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 1, signer.calls)
}
