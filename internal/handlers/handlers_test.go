// internal/handlers/handlers_test.go
package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/designly/marketplace-backend/internal/config"
	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Design{},
		&models.Purchase{},
		&models.Like{},
		&models.Follow{},
	)
	require.NoError(t, err)

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Payment: config.PaymentConfig{
			CardFeePercent:       12.0,
			StablecoinFeePercent: 15.0,
			DownloadURLTTL:       300,
		},
	}
}

// asUser injects the authenticated identity the way the auth middleware
// does, without minting real tokens.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set("user_id", user.ID.String())
			c.Set("username", user.Username)
			c.Set("user_type", string(user.UserType))
		}
		c.Next()
	}
}

// stubVerifier keeps PaymentService's reference shape checks but answers the
// card verdict locally instead of asking Stripe.
type stubVerifier struct {
	*services.PaymentService
	cardErr error
}

func (v *stubVerifier) VerifyCardPayment(paymentIntentID string) error {
	return v.cardErr
}

type stubSigner struct {
	err error
}

func (s *stubSigner) SignURL(key string, expiration time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("https://cdn.example.com/%s?sig=test", key), nil
}

func seedUser(t *testing.T, db *gorm.DB, username string, userType models.UserType) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		UserType: userType,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedDesign(t *testing.T, db *gorm.DB, creatorID uuid.UUID, price string) *models.Design {
	t.Helper()

	assetKey := "assets/" + uuid.NewString() + ".zip"
	design := &models.Design{
		CreatorID:   creatorID,
		Title:       "Poster pack",
		Description: "A pack of printable posters.",
		Category:    "print",
		Price:       decimal.RequireFromString(price),
		AssetKey:    &assetKey,
		Status:      models.DesignStatusActive,
	}
	require.NoError(t, db.Create(design).Error)
	return design
}

func newServices(db *gorm.DB, cfg *config.Config, signer services.URLSigner) (*services.PurchaseService, *services.DownloadService, *services.PaymentService) {
	purchaseService := services.NewPurchaseService(db, cfg, nil)
	entitlementService := services.NewEntitlementService(db)
	downloadService := services.NewDownloadService(db, entitlementService, signer,
		time.Duration(cfg.Payment.DownloadURLTTL)*time.Second)
	paymentService := services.NewPaymentService(cfg)
	return purchaseService, downloadService, paymentService
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}
