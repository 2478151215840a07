// internal/services/services_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/designly/marketplace-backend/internal/config"
	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/utils"
)

func defaultPaginationParams() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

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
		&models.JobPost{},
		&models.AuditLog{},
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
			MinimumPayout:        10.0,
			DownloadURLTTL:       300,
		},
	}
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
		Title:       "Geometric poster pack",
		Description: "A pack of printable geometric posters.",
		Category:    "print",
		Price:       decimal.RequireFromString(price),
		AssetKey:    &assetKey,
		Status:      models.DesignStatusActive,
	}
	require.NoError(t, db.Create(design).Error)
	return design
}

func seedCompletedPurchase(t *testing.T, db *gorm.DB, buyerID, designID uuid.UUID, txRef string) *models.Purchase {
	t.Helper()

	purchase := &models.Purchase{
		BuyerID:         buyerID,
		DesignID:        designID,
		Amount:          decimal.RequireFromString("100.00"),
		PlatformFee:     decimal.RequireFromString("12.00"),
		CreatorPayout:   decimal.RequireFromString("88.00"),
		FeePercent:      decimal.RequireFromString("12"),
		PaymentMethod:   models.PaymentMethodCard,
		PaymentNetwork:  "stripe",
		TransactionHash: txRef,
		Status:          models.PurchaseStatusCompleted,
	}
	require.NoError(t, db.Create(purchase).Error)
	return purchase
}
