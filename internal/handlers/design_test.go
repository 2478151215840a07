// internal/handlers/design_test.go
package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/models"
	"github.com/designly/marketplace-backend/internal/services"
)

type DownloadHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	signer *stubSigner
	artist *models.User
	buyer  *models.User
	design *models.Design

	handler *DesignHandler
}

func (suite *DownloadHandlerTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	cfg := newTestConfig()
	suite.signer = &stubSigner{}

	_, downloadService, _ := newServices(suite.db, cfg, suite.signer)

	designService := services.NewDesignService(suite.db)
	socialService := services.NewSocialService(suite.db)
	suite.handler = NewDesignHandler(designService, socialService, downloadService, nil)

	suite.artist = seedUser(suite.T(), suite.db, "artist", models.UserTypeArtist)
	suite.buyer = seedUser(suite.T(), suite.db, "buyer", models.UserTypeBuyer)
	suite.design = seedDesign(suite.T(), suite.db, suite.artist.ID, "50.00")
}

func (suite *DownloadHandlerTestSuite) download(as *models.User, designID string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/designs/:id/download", asUser(as), suite.handler.DownloadDesign)

	req, _ := http.NewRequest("GET", "/designs/"+designID+"/download", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *DownloadHandlerTestSuite) TestAnonymousGetsUnauthorized() {
	w := suite.download(nil, suite.design.ID.String())
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *DownloadHandlerTestSuite) TestNonPurchaserForbidden() {
	w := suite.download(suite.buyer, suite.design.ID.String())
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *DownloadHandlerTestSuite) TestOwnerRedirectedToSignedURL() {
	w := suite.download(suite.artist, suite.design.ID.String())

	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Contains(suite.T(), w.Header().Get("Location"), *suite.design.AssetKey)
}

func (suite *DownloadHandlerTestSuite) TestPurchaserRedirectedAfterSale() {
	fee := suite.design.Price.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100)).Round(2)
	purchase := &models.Purchase{
		BuyerID:         suite.buyer.ID,
		DesignID:        suite.design.ID,
		Amount:          suite.design.Price,
		PlatformFee:     fee,
		CreatorPayout:   suite.design.Price.Sub(fee),
		FeePercent:      decimal.NewFromInt(12),
		PaymentMethod:   models.PaymentMethodCard,
		PaymentNetwork:  "stripe",
		TransactionHash: "pi_download_test",
		Status:          models.PurchaseStatusCompleted,
	}
	suite.Require().NoError(suite.db.Create(purchase).Error)

	w := suite.download(suite.buyer, suite.design.ID.String())
	assert.Equal(suite.T(), http.StatusFound, w.Code)
}

func (suite *DownloadHandlerTestSuite) TestMissingAssetNotFound() {
	suite.Require().NoError(suite.db.Model(&models.Design{}).
		Where("id = ?", suite.design.ID).
		Update("asset_key", nil).Error)

	w := suite.download(suite.artist, suite.design.ID.String())
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *DownloadHandlerTestSuite) TestUnknownDesignNotFound() {
	w := suite.download(suite.artist, "8e7c4b3a-2d10-4f9e-8c6b-5a4d3e2f1a0b")
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *DownloadHandlerTestSuite) TestSigningFailureNeverLeaksUnsignedURL() {
	suite.signer.err = errors.New("s3 unavailable")

	w := suite.download(suite.artist, suite.design.ID.String())
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Empty(suite.T(), w.Header().Get("Location"))
}

func TestDownloadHandlerSuite(t *testing.T) {
	suite.Run(t, new(DownloadHandlerTestSuite))
}
